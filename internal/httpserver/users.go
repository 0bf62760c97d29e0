package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/logging"
	"github.com/sarmatov/shopadmin/internal/models"
	"github.com/sarmatov/shopadmin/internal/repo"
)

type UserHandler struct {
	Repo *repo.GormRepo
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Repo.GetUsers(ctx)
	if err != nil {
		l.Error("list_users_error", "status", 500, "reason", "cannot get users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get users")
	}

	return c.Render(http.StatusOK, "users.html", map[string]any{"Users": users})
}

func (h *UserHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "user_form.html", map[string]any{
		"User":   (*models.User)(nil),
		"Action": "/add/users",
	})
}

func (h *UserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	name := formValue(c, "name")
	email := formValue(c, "email")
	if name == "" || email == "" {
		l.Warn("create_user_error", "status", 400, "reason", "name and email are required")
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	taken, err := h.Repo.UserEmailTaken(ctx, email, 0)
	if err != nil {
		l.Error("create_user_error", "status", 500, "reason", "cannot check email", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add user")
	}
	if taken {
		l.Warn("create_user_error", "status", 400, "reason", "email already in use")
		return echo.NewHTTPError(http.StatusBadRequest, "email already in use")
	}

	if _, err := h.Repo.CreateUser(ctx, &models.User{Name: name, Email: email}); err != nil {
		l.Error("create_user_error", "status", 500, "reason", "cannot add user to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add user")
	}

	l.Info("create_user_success")
	return c.Redirect(http.StatusSeeOther, "/users")
}

func (h *UserHandler) EditForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.edit_form")

	id, ok := parseID(c)
	if !ok {
		l.Warn("edit_user_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	user, err := h.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("edit_user_error", "status", 404, "reason", "user not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("edit_user_error", "status", 500, "reason", "cannot get user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}

	return c.Render(http.StatusOK, "user_form.html", map[string]any{
		"User":   user,
		"Action": c.Request().URL.Path,
	})
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, ok := parseID(c)
	if !ok {
		l.Warn("update_user_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	name := formValue(c, "name")
	email := formValue(c, "email")
	if name == "" || email == "" {
		l.Warn("update_user_error", "status", 400, "reason", "name and email are required")
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	taken, err := h.Repo.UserEmailTaken(ctx, email, id)
	if err != nil {
		l.Error("update_user_error", "status", 500, "reason", "cannot check email", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}
	if taken {
		l.Warn("update_user_error", "status", 400, "reason", "email already in use")
		return echo.NewHTTPError(http.StatusBadRequest, "email already in use")
	}

	if err := h.Repo.UpdateUser(ctx, &models.User{ID: id, Name: name, Email: email}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_user_error", "status", 404, "reason", "user not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("update_user_error", "status", 500, "reason", "cannot update user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}

	l.Info("update_user_success")
	return c.Redirect(http.StatusSeeOther, "/users")
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, ok := parseID(c)
	if !ok {
		l.Warn("delete_user_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_user_error", "status", 404, "reason", "user not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("delete_user_error", "status", 500, "reason", "cannot delete user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}

	l.Info("delete_user_success")
	return c.Redirect(http.StatusSeeOther, "/users")
}
