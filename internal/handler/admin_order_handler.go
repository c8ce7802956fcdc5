package handler

import (
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/middleware"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	adminOrderUsecase *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(adminOrderUsecase *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{adminOrderUsecase: adminOrderUsecase}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("/orders", h.List)
	g.PUT("/orders/:id/status", h.UpdateStatus)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// GET /admin/orders?page=&limit=&status=&user_id=&from=&to=
func (h *AdminOrderHandler) List(c echo.Context) error {
	f := repo.AdminOrderListFilter{
		Page:   intQueryDefault(c, "page", 1),
		Limit:  intQueryDefault(c, "limit", 20),
		Status: c.QueryParam("status"),
	}

	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		f.UserID = &userID
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.To = &to
	}

	outs, err := h.adminOrderUsecase.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

// PUT /admin/orders/:id/status
func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.adminOrderUsecase.UpdateStatus(c.Request().Context(), adminID, orderID, usecase.AdminUpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "status updated"})
}
