package repository

import (
	"context"
	"database/sql"
	"time"

	"brewery_dashboard/internal/models"
)

// AdjustmentRepo stores the per-vessel "what if" inputs.
type AdjustmentRepo interface {
	Save(ctx context.Context, vesselID string, a models.Adjustment) error
	Delete(ctx context.Context, vesselID string) error
	List(ctx context.Context) (map[string]models.Adjustment, error)
}

// EventRepo is the refresh audit log.
type EventRepo interface {
	Append(ctx context.Context, e models.RefreshEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.RefreshEvent, error)
}

type Repository struct {
	AdjustmentRepo AdjustmentRepo
	EventRepo      EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		AdjustmentRepo: NewAdjustmentSQLite(db),
		EventRepo:      NewEventSQLite(db),
	}
}
