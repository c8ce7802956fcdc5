package handler

import (
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/domain/model"
	"bookstore/internal/middleware"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminAuditHandler struct {
	auditUsecase *usecase.AuditLogUsecase
}

// DI
func NewAdminAuditHandler(auditUsecase *usecase.AuditLogUsecase) *AdminAuditHandler {
	return &AdminAuditHandler{auditUsecase: auditUsecase}
}

func (h *AdminAuditHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("/audit-logs", h.List)
}

// GET /admin/audit-logs?actor_user_id=&action=&resource_type=&resource_id=&from=&to=&limit=&offset=
func (h *AdminAuditHandler) List(c echo.Context) error {
	var f repo.AuditLogFilter

	if raw := c.QueryParam("actor_user_id"); raw != "" {
		actorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid actor_user_id"})
		}
		f.ActorUserID = &actorID
	}
	if raw := c.QueryParam("action"); raw != "" {
		action := model.AuditAction(raw)
		f.Action = &action
	}
	if raw := c.QueryParam("resource_type"); raw != "" {
		rt := model.AuditResourceType(raw)
		f.ResourceType = &rt
	}
	if raw := c.QueryParam("resource_id"); raw != "" {
		resourceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resource_id"})
		}
		f.ResourceID = &resourceID
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.CreatedFrom = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.CreatedTo = &to
	}
	f.Limit = intQueryDefault(c, "limit", 0)
	f.Offset = intQueryDefault(c, "offset", 0)

	outs, err := h.auditUsecase.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}
