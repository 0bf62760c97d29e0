package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/logging"
	"github.com/sarmatov/shopadmin/internal/models"
	"github.com/sarmatov/shopadmin/internal/repo"
	"github.com/sarmatov/shopadmin/internal/service"
)

type CategoryHandler struct {
	Repo *repo.GormRepo
}

// List renders the aggregated category view: every category with its
// products folded in, empty categories included.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	rows, err := h.Repo.GetCategoryProductRows(ctx)
	if err != nil {
		l.Error("list_categories_error", "status", 500, "reason", "cannot get categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get categories")
	}

	return c.Render(http.StatusOK, "categories.html", map[string]any{
		"Categories": service.FoldCategories(rows),
	})
}

func (h *CategoryHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "category_form.html", map[string]any{
		"Category": (*models.Category)(nil),
		"Action":   "/add/categories",
	})
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	name := formValue(c, "name")
	if name == "" {
		l.Warn("create_category_error", "status", 400, "reason", "name is required")
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	if _, err := h.Repo.CreateCategory(ctx, &models.Category{Name: name}); err != nil {
		l.Error("create_category_error", "status", 500, "reason", "cannot add category to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add category")
	}

	l.Info("create_category_success")
	return c.Redirect(http.StatusSeeOther, "/categories")
}

func (h *CategoryHandler) EditForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.edit_form")

	id, ok := parseID(c)
	if !ok {
		l.Warn("edit_category_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	category, err := h.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("edit_category_error", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("edit_category_error", "status", 500, "reason", "cannot get category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get category")
	}

	return c.Render(http.StatusOK, "category_form.html", map[string]any{
		"Category": category,
		"Action":   c.Request().URL.Path,
	})
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, ok := parseID(c)
	if !ok {
		l.Warn("update_category_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	name := formValue(c, "name")
	if name == "" {
		l.Warn("update_category_error", "status", 400, "reason", "name is required")
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	if err := h.Repo.UpdateCategory(ctx, &models.Category{ID: id, Name: name}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_category_error", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("update_category_error", "status", 500, "reason", "cannot update category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
	}

	l.Info("update_category_success")
	return c.Redirect(http.StatusSeeOther, "/categories")
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, ok := parseID(c)
	if !ok {
		l.Warn("delete_category_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_category_error", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("delete_category_error", "status", 500, "reason", "cannot delete category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}

	l.Info("delete_category_success")
	return c.Redirect(http.StatusSeeOther, "/categories")
}
