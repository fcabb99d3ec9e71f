package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type MissionRepo interface {
	Create(ctx context.Context, rows []*types.Mission) ([]*types.Mission, error)
	ListByProfileID(ctx context.Context, profileID uuid.UUID) ([]*types.Mission, error)
}

type missionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMissionRepo(db *gorm.DB, baseLog *logger.Logger) MissionRepo {
	return &missionRepo{db: db, log: baseLog.With("repo", "MissionRepo")}
}

func (r *missionRepo) Create(ctx context.Context, rows []*types.Mission) ([]*types.Mission, error) {
	if len(rows) == 0 {
		return []*types.Mission{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *missionRepo) ListByProfileID(ctx context.Context, profileID uuid.UUID) ([]*types.Mission, error) {
	var out []*types.Mission
	if profileID == uuid.Nil {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
