package usecase

import (
	"context"
	"net/http"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

// DI
func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type AuditLogOutput struct {
	ID           int64     `json:"id"`
	ActorUserID  int64     `json:"actor_user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	BeforeJSON   string    `json:"before_json"`
	AfterJSON    string    `json:"after_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// List は監査ログ一覧（管理者用・新しい順）。
func (u *AuditLogUsecase) List(ctx context.Context, f repo.AuditLogFilter) ([]AuditLogOutput, error) {
	if f.Limit < 0 || f.Offset < 0 {
		return []AuditLogOutput{}, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}
	if f.Action != nil && !validAuditAction(*f.Action) {
		return []AuditLogOutput{}, NewHTTPError(http.StatusBadRequest, "invalid action")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return []AuditLogOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]AuditLogOutput, 0, len(logs))
	for _, l := range logs {
		outs = append(outs, AuditLogOutput{
			ID:           l.ID,
			ActorUserID:  l.ActorUserID,
			Action:       string(l.Action),
			ResourceType: string(l.ResourceType),
			ResourceID:   l.ResourceID,
			BeforeJSON:   l.BeforeJSON,
			AfterJSON:    l.AfterJSON,
			CreatedAt:    l.CreatedAt,
		})
	}
	return outs, nil
}

func validAuditAction(a model.AuditAction) bool {
	switch a {
	case model.AuditActionUpdateStock, model.AuditActionUpdateOrderStatus:
		return true
	default:
		return false
	}
}
