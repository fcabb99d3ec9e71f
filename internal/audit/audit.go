package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/ctxutil"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type Entry struct {
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]interface{}
}

// Recorder writes audit rows after the business operation has committed.
// Writes are best-effort: a failure is logged and swallowed, it never rolls
// back the business write and never changes the response.
type Recorder struct {
	log  *logger.Logger
	repo repos.AuditLogRepo
}

func NewRecorder(baseLog *logger.Logger, repo repos.AuditLogRepo) *Recorder {
	return &Recorder{log: baseLog.With("component", "AuditRecorder"), repo: repo}
}

func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.repo == nil {
		return
	}
	id := ctxutil.GetIdentity(ctx)
	row := &types.AuditLog{
		ID:         uuid.New(),
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		CreatedAt:  time.Now().UTC(),
	}
	if id != nil {
		row.ActorUserID = id.UserID
		row.ActorEmail = id.Email
	}
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err == nil {
			row.Details = datatypes.JSON(raw)
		}
	}

	// Request cancellation must not lose the entry for work that committed.
	writeCtx := context.WithoutCancel(ctx)
	if _, err := r.repo.Create(writeCtx, []*types.AuditLog{row}); err != nil {
		r.log.Warn("audit write failed",
			"action", entry.Action,
			"target_type", entry.TargetType,
			"target_id", entry.TargetID,
			"error", err,
		)
	}
}
