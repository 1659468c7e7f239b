package repository

import (
	"context"
	"database/sql"
	"time"

	"brewery_dashboard/internal/models"
)

type AdjustmentSQLite struct {
	db *sql.DB
}

func NewAdjustmentSQLite(db *sql.DB) *AdjustmentSQLite {
	return &AdjustmentSQLite{db: db}
}

const (
	upsertAdjustmentSQL = `
		INSERT INTO vessel_adjustments (vessel_id, dex_count, fruit_volume, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(vessel_id) DO UPDATE SET
			dex_count=excluded.dex_count,
			fruit_volume=excluded.fruit_volume,
			updated_at=excluded.updated_at
	`

	deleteAdjustmentSQL = `DELETE FROM vessel_adjustments WHERE vessel_id=?`

	selectAdjustmentsSQL = `SELECT vessel_id, dex_count, fruit_volume FROM vessel_adjustments`
)

// Save upserts the adjustment under the normalized vessel id. A zero adjustment
// removes the row instead.
func (r *AdjustmentSQLite) Save(ctx context.Context, vesselID string, a models.Adjustment) error {
	if a.IsZero() {
		return r.Delete(ctx, vesselID)
	}
	_, err := r.db.ExecContext(ctx, upsertAdjustmentSQL,
		models.NormalizeVesselID(vesselID),
		a.DexCount,
		a.FruitVolume,
		time.Now().UTC(),
	)
	return err
}

// Delete is a no-op for vessels without an adjustment.
func (r *AdjustmentSQLite) Delete(ctx context.Context, vesselID string) error {
	_, err := r.db.ExecContext(ctx, deleteAdjustmentSQL, models.NormalizeVesselID(vesselID))
	return err
}

// List returns every stored adjustment keyed by normalized vessel id.
func (r *AdjustmentSQLite) List(ctx context.Context) (map[string]models.Adjustment, error) {
	rows, err := r.db.QueryContext(ctx, selectAdjustmentsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.Adjustment)
	for rows.Next() {
		var (
			id string
			a  models.Adjustment
		)
		if err := rows.Scan(&id, &a.DexCount, &a.FruitVolume); err != nil {
			return nil, err
		}
		out[id] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
