package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.db")
	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"vessel_adjustments", "refresh_events"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// reopening an existing file must not fail on the schema
	db2, err := InitDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = db2.Close()
}

func TestInitDB_RejectsNegativeAdjustment(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "dashboard.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO vessel_adjustments (vessel_id, dex_count, fruit_volume, updated_at) VALUES ('FV1', -1, 0, '2024-05-01 10:00:00')`)
	if err == nil {
		t.Fatalf("expected CHECK constraint failure")
	}
}
