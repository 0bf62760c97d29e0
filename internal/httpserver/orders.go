package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sarmatov/shopadmin/internal/logging"
	"github.com/sarmatov/shopadmin/internal/mykafka"
	"github.com/sarmatov/shopadmin/internal/repo"
	"github.com/sarmatov/shopadmin/internal/report"
	"github.com/sarmatov/shopadmin/internal/service"
)

type OrderHandler struct {
	Repo     *repo.GormRepo
	Svc      *service.OrderService
	Report   *report.Generator
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	rows, err := h.Repo.GetOrderListRows(ctx)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "reason", "cannot get orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}

	return c.Render(http.StatusOK, "orders.html", map[string]any{"Orders": rows})
}

func (h *OrderHandler) NewForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.new_form")

	users, err := h.Repo.GetUsers(ctx)
	if err != nil {
		l.Error("new_order_form_error", "status", 500, "reason", "cannot get users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get users")
	}

	products, err := h.Repo.GetProducts(ctx)
	if err != nil {
		l.Error("new_order_form_error", "status", 500, "reason", "cannot get products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	return c.Render(http.StatusOK, "order_form.html", map[string]any{
		"Users":    users,
		"Products": products,
	})
}

// Create runs the placement workflow: user and product must exist, the
// requested quantity must not exceed stock, and the stock decrement plus
// order insert land atomically.
func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, err1 := strconv.Atoi(formValue(c, "user_id"))
	productID, err2 := strconv.Atoi(formValue(c, "product_id"))
	quantity, err3 := strconv.Atoi(formValue(c, "quantity"))
	if err1 != nil || err2 != nil || err3 != nil || userID <= 0 || productID <= 0 {
		l.Warn("create_order_error", "status", 400, "reason", "user_id, product_id and quantity are required")
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, product_id and quantity are required")
	}

	order, err := h.Svc.Place(ctx, uint(userID), uint(productID), quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_order_error", "status", 404, "reason", "referenced entity not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_order_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("create_order_error", "status", 500, "reason", "cannot place order", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
		}
	}

	h.publish(c, strconv.Itoa(int(order.UserID)), map[string]any{
		"type":      "order_placed",
		"orderID":   order.ID,
		"userID":    order.UserID,
		"productID": order.ProductID,
		"quantity":  order.Quantity,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.Redirect(http.StatusSeeOther, "/orders")
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id, ok := parseID(c)
	if !ok {
		l.Warn("delete_order_error", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("delete_order_error", "status", 500, "reason", "cannot delete order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order")
	}

	h.publish(c, strconv.Itoa(int(id)), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})

	l.Info("delete_order_success")
	return c.Redirect(http.StatusSeeOther, "/orders")
}

func (h *OrderHandler) ByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.by_user")

	rows, err := h.Repo.GetUserOrderRows(ctx)
	if err != nil {
		l.Error("orders_by_user_error", "status", 500, "reason", "cannot get orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}

	return c.Render(http.StatusOK, "orders_by_user.html", map[string]any{
		"Users": service.FoldUserOrders(rows),
	})
}

func (h *OrderHandler) ExportReport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.export_report")

	rows, err := h.Repo.GetReportRows(ctx)
	if err != nil {
		l.Error("export_report_error", "status", 500, "reason", "cannot get orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}

	doc, err := h.Report.Build(rows, time.Now())
	if err != nil {
		l.Error("export_report_error", "status", 500, "reason", "cannot render report", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot render report")
	}

	l.Info("export_report_success", "orders", len(rows), "bytes", len(doc))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders_report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
