package migrations

import (
	"path/filepath"
	"testing"

	"github.com/Simplici0/foamquote/internal/db"
)

func TestUpIsRepeatableAndReportsVersion(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	for i := 0; i < 2; i++ {
		if err := Up(database); err != nil {
			t.Fatalf("run migrations (pass=%d): %v", i, err)
		}
	}

	v, err := Version(database)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if v != 2 {
		t.Fatalf("version=%d, want 2", v)
	}

	if _, err := database.Exec(`INSERT INTO business_settings (id) VALUES (2)`); err == nil {
		t.Fatalf("expected business_settings to reject a second row")
	}
}
