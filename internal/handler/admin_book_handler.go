package handler

import (
	"net/http"
	"strconv"

	"bookstore/internal/config"
	"bookstore/internal/middleware"
	"bookstore/internal/usecase"
	"bookstore/internal/validation"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

type AdminBookHandler struct {
	bookUsecase *usecase.BookUsecase
}

// DI
func NewAdminBookHandler(bookUsecase *usecase.BookUsecase) *AdminBookHandler {
	return &AdminBookHandler{bookUsecase: bookUsecase}
}

func (h *AdminBookHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.POST("/books", h.Create)
	g.PUT("/books/:id", h.Update)
	g.DELETE("/books/:id", h.Delete)
	g.PUT("/books/:id/stock", h.SetStock)
}

type adminBookRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Author          string  `json:"author" validate:"required,max=120"`
	ISBN            string  `json:"isbn" validate:"required,max=20"`
	Price           int64   `json:"price" validate:"min=0"`
	StockQuantity   int64   `json:"stock_quantity" validate:"min=0"`
	Category        string  `json:"category" validate:"required,max=80"`
	Description     string  `json:"description"`
	Publisher       string  `json:"publisher" validate:"max=120"`
	PublicationYear int     `json:"publication_year"`
	Pages           int     `json:"pages" validate:"min=0"`
	Language        string  `json:"language" validate:"max=40"`
	Rating          float64 `json:"rating" validate:"min=0,max=5"`
}

type setStockRequest struct {
	Stock  int64  `json:"stock" validate:"min=0"`
	Reason string `json:"reason" validate:"required,max=200"`
}

// POST /admin/books
func (h *AdminBookHandler) Create(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req adminBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validation.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	bookID, err := h.bookUsecase.AdminCreateBook(c.Request().Context(), adminID, toAdminBookInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": bookID})
}

// PUT /admin/books/:id
func (h *AdminBookHandler) Update(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req adminBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validation.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	if err := h.bookUsecase.AdminUpdateBook(c.Request().Context(), adminID, bookID, toAdminBookInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

// DELETE /admin/books/:id（論理削除）
func (h *AdminBookHandler) Delete(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.bookUsecase.AdminDeleteBook(c.Request().Context(), adminID, bookID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// PUT /admin/books/:id/stock
func (h *AdminBookHandler) SetStock(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validation.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	if err := h.bookUsecase.AdminSetStock(c.Request().Context(), adminID, bookID, req.Stock, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}

func toAdminBookInput(req adminBookRequest) usecase.AdminBookInput {
	return usecase.AdminBookInput{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		Category:        req.Category,
		Description:     req.Description,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Pages:           req.Pages,
		Language:        req.Language,
		Rating:          req.Rating,
	}
}
