package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

// AuditLogRepo is append-only. There is deliberately no update or delete.
type AuditLogRepo interface {
	Create(ctx context.Context, rows []*types.AuditLog) ([]*types.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) Create(ctx context.Context, rows []*types.AuditLog) ([]*types.AuditLog, error) {
	if len(rows) == 0 {
		return []*types.AuditLog{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *auditLogRepo) ListRecent(ctx context.Context, limit int) ([]*types.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []*types.AuditLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
