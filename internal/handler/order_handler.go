package handler

import (
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/middleware"
	"bookstore/internal/usecase"
	"bookstore/internal/validation"
	"bookstore/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUsecase    *usecase.OrderUsecase
	checkoutMetrics *metrics.CheckoutMetrics
}

// DI
func NewOrderHandler(orderUsecase *usecase.OrderUsecase, checkoutMetrics *metrics.CheckoutMetrics) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, checkoutMetrics: checkoutMetrics}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders", middleware.AuthJWT(cfg))
	g.POST("", h.Place)
	g.GET("", h.ListMine)
	g.GET("/:id", h.DetailMine)
}

type placeOrderRequest struct {
	ShippingAddress    string `json:"shipping_address" validate:"required,max=200"`
	ShippingCity       string `json:"shipping_city" validate:"max=100"`
	ShippingPostalCode string `json:"shipping_postal_code" validate:"max=20"`
	ShippingPhone      string `json:"shipping_phone" validate:"max=30"`
	PaymentMethod      string `json:"payment_method" validate:"max=50"`
}

// POST /orders カートから注文を確定する
func (h *OrderHandler) Place(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		h.checkoutMetrics.Rejected("invalid")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validation.Struct(req); err != nil {
		h.checkoutMetrics.Rejected("invalid")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	start := time.Now()
	out, err := h.orderUsecase.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		ShippingAddress:    req.ShippingAddress,
		ShippingCity:       req.ShippingCity,
		ShippingPostalCode: req.ShippingPostalCode,
		ShippingPhone:      req.ShippingPhone,
		PaymentMethod:      req.PaymentMethod,
	})
	h.checkoutMetrics.ObserveDuration(time.Since(start))

	if err != nil {
		h.checkoutMetrics.Rejected(rejectReason(err))
		return writeError(c, err)
	}

	h.checkoutMetrics.Placed()
	return c.JSON(http.StatusCreated, out)
}

// GET /orders 自分の注文一覧
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	outs, err := h.orderUsecase.ListMyOrders(
		c.Request().Context(),
		userID,
		intQueryDefault(c, "page", 1),
		intQueryDefault(c, "limit", 20),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

// GET /orders/:id 自分の注文詳細（他人のは404）
func (h *OrderHandler) DetailMine(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUsecase.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// メトリクスのreasonラベル。基数が増えないよう固定値だけ。
func rejectReason(err error) string {
	if _, ok := usecase.AsInsufficientStock(err); ok {
		return "insufficient_stock"
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status == http.StatusBadRequest {
			if he.Message == "cart empty" {
				return "empty_cart"
			}
			return "invalid"
		}
	}
	return "error"
}
