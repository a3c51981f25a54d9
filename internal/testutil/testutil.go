// Package testutil provides shared test helpers for setting up stores.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/noteful/internal/store"
)

// TestStore opens a SQLite store in a temporary file that is removed when
// the test finishes. A file is used instead of :memory: because every pooled
// connection to :memory: sees its own empty database.
func TestStore(t testing.TB) *store.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "noteful-test.db")

	db, err := store.Open(context.Background(), store.DriverSQLite, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return db
}
