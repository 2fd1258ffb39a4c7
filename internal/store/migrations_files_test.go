package store

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var migrationName = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)

func TestMigrationFilesArePaired(t *testing.T) {
	dir := filepath.Join("..", "..", "db", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	seen := map[string]map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationName.FindStringSubmatch(entry.Name())
		if match == nil {
			t.Fatalf("unexpected file in migrations dir: %s", entry.Name())
		}
		version, direction := match[1], match[2]
		if seen[version] == nil {
			seen[version] = map[string]bool{}
		}
		if seen[version][direction] {
			t.Fatalf("duplicate %s file for version %s", direction, version)
		}
		seen[version][direction] = true
	}

	if len(seen) == 0 {
		t.Fatal("no migrations found")
	}
	for version, directions := range seen {
		if !directions["up"] || !directions["down"] {
			t.Fatalf("version %s is missing its up or down file", version)
		}
	}
}

func TestInitialMigrationCreatesCoreTables(t *testing.T) {
	contents, err := os.ReadFile(filepath.Join("..", "..", "db", "migrations", "0001_init.up.sql"))
	if err != nil {
		t.Fatalf("read initial migration: %v", err)
	}
	ddl := strings.ToLower(string(contents))
	for _, table := range []string{"users", "refresh_sessions", "revoked_access_tokens", "saved_searches"} {
		if !strings.Contains(ddl, "create table if not exists "+table) {
			t.Errorf("initial migration should create %s", table)
		}
	}
}
