package server

import (
	"bookstore/internal/config"
	"bookstore/internal/handler"
	"bookstore/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルーティング対象のhandler一式
type Handlers struct {
	Auth        *handler.AuthHandler
	Books       *handler.BookHandler
	Cart        *handler.CartHandler
	Orders      *handler.OrderHandler
	AdminBooks  *handler.AdminBookHandler
	AdminOrders *handler.AdminOrderHandler
	AdminAudit  *handler.AdminAuditHandler
}

// New はechoを組み立てて返す。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	h.Auth.RegisterRoutes(e, cfg)
	h.Books.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Orders.RegisterRoutes(e, cfg)
	h.AdminBooks.RegisterRoutes(e, cfg)
	h.AdminOrders.RegisterRoutes(e, cfg)
	h.AdminAudit.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
