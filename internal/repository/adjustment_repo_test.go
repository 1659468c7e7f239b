package repository

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"brewery_dashboard/internal/models"
)

type argumentFunc func(v driver.Value) bool

func (f argumentFunc) Match(v driver.Value) bool { return f(v) }

var recentUTC = argumentFunc(func(v driver.Value) bool {
	tm, ok := v.(time.Time)
	if !ok || tm.Location() != time.UTC {
		return false
	}
	now := time.Now().UTC()
	return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
})

func TestAdjustmentSave_UpsertsNormalizedID(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewAdjustmentSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vessel_adjustments")).
		WithArgs("FV1", 2, 35.5, recentUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(ctx(t), " fv 1", models.Adjustment{DexCount: 2, FruitVolume: 35.5}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAdjustmentSave_ZeroDeletes(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewAdjustmentSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vessel_adjustments WHERE vessel_id=?")).
		WithArgs("FVL2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(ctx(t), "fvl2", models.Adjustment{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAdjustmentList(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewAdjustmentSQLite(db)

	rows := sqlmock.NewRows([]string{"vessel_id", "dex_count", "fruit_volume"}).
		AddRow("FV1", 1, 0.0).
		AddRow("FV3", 0, 50.0)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT vessel_id, dex_count, fruit_volume FROM vessel_adjustments")).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got["FV1"].DexCount != 1 || got["FV3"].FruitVolume != 50 {
		t.Fatalf("unexpected adjustments: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAdjustmentList_QueryError(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewAdjustmentSQLite(db)

	mock.ExpectQuery("SELECT vessel_id").WillReturnError(errors.New("locked"))
	if _, err := repo.List(ctx(t)); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
