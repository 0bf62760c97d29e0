package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	UserHandler     *UserHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	OrderHandler    *OrderHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/users", d.UserHandler.List)
	e.GET("/add/users", d.UserHandler.NewForm)
	e.POST("/add/users", d.UserHandler.Create)
	e.GET("/edit/users/:id", d.UserHandler.EditForm)
	e.POST("/edit/users/:id", d.UserHandler.Update)
	e.POST("/delete/users/:id", d.UserHandler.Delete)

	e.GET("/categories", d.CategoryHandler.List)
	e.GET("/add/categories", d.CategoryHandler.NewForm)
	e.POST("/add/categories", d.CategoryHandler.Create)
	e.GET("/edit/categories/:id", d.CategoryHandler.EditForm)
	e.POST("/edit/categories/:id", d.CategoryHandler.Update)
	e.POST("/delete/categories/:id", d.CategoryHandler.Delete)

	e.GET("/products", d.ProductHandler.List)
	e.GET("/add/products", d.ProductHandler.NewForm)
	e.POST("/add/products", d.ProductHandler.Create)
	e.GET("/edit/products/:id", d.ProductHandler.EditForm)
	e.POST("/edit/products/:id", d.ProductHandler.Update)
	e.POST("/delete/products/:id", d.ProductHandler.Delete)

	// Orders have no edit routes: they are immutable once placed.
	e.GET("/orders", d.OrderHandler.List)
	e.GET("/add/orders", d.OrderHandler.NewForm)
	e.POST("/add/orders", d.OrderHandler.Create)
	e.POST("/delete/orders/:id", d.OrderHandler.Delete)
	e.GET("/orders/by-user", d.OrderHandler.ByUser)
	e.GET("/export/orders/report", d.OrderHandler.ExportReport)
}
