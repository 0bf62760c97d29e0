package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
	"github.com/sarmatov/shopadmin/internal/repo"
	"github.com/sarmatov/shopadmin/internal/report"
	"github.com/sarmatov/shopadmin/internal/service"
)

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
	DB   *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := &repo.GormRepo{DB: db}

	renderer, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	Register(e, &Deps{
		UserHandler:     &UserHandler{Repo: r},
		CategoryHandler: &CategoryHandler{Repo: r},
		ProductHandler:  &ProductHandler{Repo: r},
		OrderHandler: &OrderHandler{
			Repo:   r,
			Svc:    &service.OrderService{Repo: r},
			Report: &report.Generator{},
		},
	})

	return &testEnv{E: e, Repo: r, DB: db}
}

func (env *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func TestUserFormFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/add/users", url.Values{"name": {"Alice"}, "email": {"alice@example.com"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get(echo.HeaderLocation))

	rec = env.get("/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")

	// Application-level email uniqueness check runs before the insert.
	rec = env.postForm("/add/users", url.Values{"name": {"Another"}, "email": {"alice@example.com"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserFormValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/add/users", url.Values{"name": {"Alice"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.postForm("/add/users", url.Values{"email": {"alice@example.com"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditUserNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/edit/users/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.postForm("/delete/users/42", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductFormFlow(t *testing.T) {
	env := newTestEnv(t)

	category := models.Category{Name: "Electronics"}
	require.NoError(t, env.DB.Create(&category).Error)

	rec := env.postForm("/add/products", url.Values{
		"name":        {"Laptop"},
		"price":       {"999.99"},
		"stock":       {"50"},
		"category_id": {strconv.Itoa(int(category.ID))},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get(echo.HeaderLocation))

	var product models.Product
	require.NoError(t, env.DB.First(&product).Error)
	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, 50, product.Stock)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)

	rec = env.postForm("/add/products", url.Values{"name": {"Bad"}, "price": {"-1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderFlow(t *testing.T) {
	env := newTestEnv(t)

	user := models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, env.DB.Create(&user).Error)
	product := models.Product{Name: "Laptop", Price: 999.99, Stock: 50}
	require.NoError(t, env.DB.Create(&product).Error)

	form := url.Values{
		"user_id":    {strconv.Itoa(int(user.ID))},
		"product_id": {strconv.Itoa(int(product.ID))},
		"quantity":   {"10"},
	}
	rec := env.postForm("/add/orders", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get(echo.HeaderLocation))

	var saved models.Product
	require.NoError(t, env.DB.First(&saved, product.ID).Error)
	assert.Equal(t, 40, saved.Stock)

	// Over-quantity placement changes nothing.
	form.Set("quantity", "100")
	rec = env.postForm("/add/orders", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, env.DB.First(&saved, product.ID).Error)
	assert.Equal(t, 40, saved.Stock)

	form.Set("quantity", "1")
	form.Set("product_id", "999")
	rec = env.postForm("/add/orders", form)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.postForm("/add/orders", url.Values{"user_id": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteOrderFlow(t *testing.T) {
	env := newTestEnv(t)

	user := models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, env.DB.Create(&user).Error)
	product := models.Product{Name: "Laptop", Price: 999.99, Stock: 50}
	require.NoError(t, env.DB.Create(&product).Error)
	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&order).Error)

	rec := env.postForm("/delete/orders/"+strconv.Itoa(int(order.ID)), url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = env.postForm("/delete/orders/"+strconv.Itoa(int(order.ID)), url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesView(t *testing.T) {
	env := newTestEnv(t)

	electronics := models.Category{Name: "Electronics"}
	require.NoError(t, env.DB.Create(&electronics).Error)
	require.NoError(t, env.DB.Create(&models.Category{Name: "Clothing"}).Error)
	require.NoError(t, env.DB.Create(&models.Product{Name: "Laptop", Price: 1, CategoryID: &electronics.ID}).Error)

	rec := env.get("/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Electronics")
	assert.Contains(t, body, "Laptop")
	assert.Contains(t, body, "No products")
}

func TestOrdersByUserView(t *testing.T) {
	env := newTestEnv(t)

	user := models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, env.DB.Create(&user).Error)
	a := models.Product{Name: "A", Price: 10, Stock: 10}
	b := models.Product{Name: "B", Price: 5, Stock: 10}
	require.NoError(t, env.DB.Create(&a).Error)
	require.NoError(t, env.DB.Create(&b).Error)
	require.NoError(t, env.DB.Create(&models.Order{UserID: user.ID, ProductID: a.ID, Quantity: 2}).Error)
	require.NoError(t, env.DB.Create(&models.Order{UserID: user.ID, ProductID: b.ID, Quantity: 1}).Error)

	rec := env.get("/orders/by-user")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "25.00")
}

func TestExportOrdersReport(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/export/orders/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "orders_report.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestExportOrdersReport_MissingFont(t *testing.T) {
	env := newTestEnv(t)

	// Same wiring, but with the report pointed at a font that does not exist.
	e := echo.New()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	Register(e, &Deps{
		UserHandler:     &UserHandler{Repo: env.Repo},
		CategoryHandler: &CategoryHandler{Repo: env.Repo},
		ProductHandler:  &ProductHandler{Repo: env.Repo},
		OrderHandler: &OrderHandler{
			Repo:   env.Repo,
			Svc:    &service.OrderService{Repo: env.Repo},
			Report: &report.Generator{FontPath: "/nonexistent/font.ttf"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/export/orders/report", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
