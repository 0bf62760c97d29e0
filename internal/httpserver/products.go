package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/logging"
	"github.com/sarmatov/shopadmin/internal/models"
	"github.com/sarmatov/shopadmin/internal/repo"
)

type ProductHandler struct {
	Repo *repo.GormRepo
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	rows, err := h.Repo.GetProductListRows(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "reason", "cannot get products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	return c.Render(http.StatusOK, "products.html", map[string]any{"Products": rows})
}

func (h *ProductHandler) NewForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.new_form")

	categories, err := h.Repo.GetCategories(ctx)
	if err != nil {
		l.Error("new_product_form_error", "status", 500, "reason", "cannot get categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get categories")
	}

	return c.Render(http.StatusOK, "product_form.html", map[string]any{
		"Product":    (*models.Product)(nil),
		"Categories": categories,
		"Selected":   uint(0),
		"Action":     "/add/products",
	})
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	product, ok := h.bindProductForm(c)
	if !ok {
		l.Warn("create_product_error", "status", 400, "reason", "invalid form")
		return echo.NewHTTPError(http.StatusBadRequest, "name and a non-negative price are required")
	}

	if _, err := h.Repo.CreateProduct(ctx, product); err != nil {
		l.Error("create_product_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product")
	}

	l.Info("create_product_success")
	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *ProductHandler) EditForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.edit_form")

	id, ok := parseID(c)
	if !ok {
		l.Warn("edit_product_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	product, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("edit_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("edit_product_error", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	categories, err := h.Repo.GetCategories(ctx)
	if err != nil {
		l.Error("edit_product_error", "status", 500, "reason", "cannot get categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get categories")
	}

	selected := uint(0)
	if product.CategoryID != nil {
		selected = *product.CategoryID
	}

	return c.Render(http.StatusOK, "product_form.html", map[string]any{
		"Product":    product,
		"Categories": categories,
		"Selected":   selected,
		"Action":     c.Request().URL.Path,
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, ok := parseID(c)
	if !ok {
		l.Warn("update_product_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	product, ok := h.bindProductForm(c)
	if !ok {
		l.Warn("update_product_error", "status", 400, "reason", "invalid form")
		return echo.NewHTTPError(http.StatusBadRequest, "name and a non-negative price are required")
	}
	product.ID = id

	if err := h.Repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("update_product_error", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	l.Info("update_product_success")
	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, ok := parseID(c)
	if !ok {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success")
	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *ProductHandler) bindProductForm(c echo.Context) (*models.Product, bool) {
	name := formValue(c, "name")
	priceStr := formValue(c, "price")
	if name == "" || priceStr == "" {
		return nil, false
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return nil, false
	}

	stock := 0
	if s := formValue(c, "stock"); s != "" {
		stock, err = strconv.Atoi(s)
		if err != nil || stock < 0 {
			return nil, false
		}
	}

	var categoryID *uint
	if s := formValue(c, "category_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			return nil, false
		}
		v := uint(id)
		categoryID = &v
	}

	return &models.Product{Name: name, Price: price, Stock: stock, CategoryID: categoryID}, true
}
