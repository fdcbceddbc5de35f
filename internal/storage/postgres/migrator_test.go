package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrationsFromFS_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_create_orders.up.sql": {
			Data: []byte("CREATE TABLE orders (id TEXT PRIMARY KEY);"),
		},
		"sql/migrations/0002_add_index.up.sql": {
			Data: []byte("CREATE INDEX idx_orders_status ON orders (status);"),
		},
	}

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("loadMigrationsFromFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 || migrations[0].Name != "create_orders" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "add_index" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
}

func TestLoadMigrationsFromFS_InvalidFilename(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/not_a_migration.up.sql": {
			Data: []byte("SELECT 1;"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for invalid migration file name")
	}
}

func TestLoadMigrationsFromFS_EmptyFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_create_orders.up.sql": {
			Data: []byte("   \n"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for empty migration file body")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMigrationsFromFS_DuplicateVersion(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_create_orders.up.sql": {
			Data: []byte("CREATE TABLE orders (id TEXT PRIMARY KEY);"),
		},
		"sql/migrations/0001_create_users.up.sql": {
			Data: []byte("CREATE TABLE users (id TEXT PRIMARY KEY);"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for duplicate migration version")
	}
}

func TestLoadMigrationsFromFS_Embedded(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations must load: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	if migrations[0].Name != "create_orders" {
		t.Fatalf("unexpected first embedded migration: %+v", migrations[0])
	}
}

func TestParseTotal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want float64
	}{
		{"18.5", 18.5},
		{" 32 ", 32},
		{"", 0},
		{"abc", 0},
		{"12,50", 0},
	}
	for _, tc := range cases {
		if got := parseTotal(tc.raw); got != tc.want {
			t.Fatalf("parseTotal(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
