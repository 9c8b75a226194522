package repository

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestWithDatabase(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017", "mongodb://localhost:27017/annotation_db"},
		{"mongodb://localhost:27017/", "mongodb://localhost:27017/annotation_db"},
		{"mongodb://admin:pw@db:27017/other?authSource=admin", "mongodb://admin:pw@db:27017/annotation_db?authSource=admin"},
		{"mongodb://a:1,b:2/?replicaSet=rs0", "mongodb://a:1,b:2/annotation_db?replicaSet=rs0"},
		{"mongodb+srv://cluster.example.net", "mongodb+srv://cluster.example.net/annotation_db"},
		{"not-a-uri", "not-a-uri"},
	}
	for _, tc := range cases {
		if got := withDatabase(tc.uri, "annotation_db"); got != tc.want {
			t.Errorf("withDatabase(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("iofs.New: %v", err)
	}
	defer src.Close()

	version, err := src.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}

	var count int
	for {
		count++
		for _, read := range []func(uint) (io.ReadCloser, string, error){src.ReadUp, src.ReadDown} {
			r, ident, err := read(version)
			if err != nil {
				t.Fatalf("migration %d missing a direction: %v", version, err)
			}
			body, err := io.ReadAll(r)
			r.Close()
			if err != nil {
				t.Fatalf("read %s: %v", ident, err)
			}
			var commands []map[string]interface{}
			if err := json.Unmarshal(body, &commands); err != nil {
				t.Fatalf("migration %s is not a JSON command array: %v", ident, err)
			}
			if len(commands) == 0 {
				t.Fatalf("migration %s has no commands", ident)
			}
		}

		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
	}
	if count != 2 {
		t.Fatalf("expected 2 migrations, found %d", count)
	}
}
