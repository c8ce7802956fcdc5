package handler

import (
	"net/http"
	"strconv"

	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type InsufficientStockResponse struct {
	Error     string `json:"error"`
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
}

// usecase層のerrorをHTTPレスポンスへ変換する共通口。
func writeError(c echo.Context, err error) error {
	if se, ok := usecase.AsInsufficientStock(err); ok {
		return c.JSON(http.StatusConflict, InsufficientStockResponse{
			Error:     "insufficient stock",
			BookID:    se.BookID,
			Title:     se.Title,
			Available: se.Available,
			Requested: se.Requested,
		})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type BookHandler struct {
	bookUsecase *usecase.BookUsecase
}

// DI
func NewBookHandler(bookUsecase *usecase.BookUsecase) *BookHandler {
	return &BookHandler{bookUsecase: bookUsecase}
}

func (h *BookHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/books", h.List)
	e.GET("/books/:id", h.Detail)
}

// GET /books?page=&limit=&q=&category=&sort=
func (h *BookHandler) List(c echo.Context) error {
	page := intQueryDefault(c, "page", 1)
	limit := intQueryDefault(c, "limit", 20)

	out, err := h.bookUsecase.ListPublicBooks(c.Request().Context(), usecase.ListBooksInput{
		Page:     page,
		Limit:    limit,
		Q:        c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /books/:id
func (h *BookHandler) Detail(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	b, err := h.bookUsecase.GetBookDetail(c.Request().Context(), bookID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// クエリ未指定・壊れた値はdefaultに倒す（範囲外はusecase側で弾く）
func intQueryDefault(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
