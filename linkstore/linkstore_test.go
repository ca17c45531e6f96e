package linkstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	id, err := store.Create("game of thrones")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != idLength {
		t.Errorf("id length = %d, want %d", len(id), idLength)
	}

	query, ok := store.Lookup(id)
	if !ok || query != "game of thrones" {
		t.Errorf("Lookup(%s) = %q, %v", id, query, ok)
	}
	if _, ok := store.Lookup("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first, err := store.Create("dune 2021")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create("inception")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if reopened.Len() != 2 {
		t.Fatalf("Len = %d after reopen, want 2", reopened.Len())
	}
	if q, ok := reopened.Lookup(first); !ok || q != "dune 2021" {
		t.Errorf("first link lost: %q %v", q, ok)
	}
	if q, ok := reopened.Lookup(second); !ok || q != "inception" {
		t.Errorf("second link lost: %q %v", q, ok)
	}
}

func TestCreateSanitizesQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	id, err := store.Create("multi\nline\tquery")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	query, _ := store.Lookup(id)
	if strings.ContainsAny(query, "\n\t") {
		t.Errorf("query not sanitized: %q", query)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 1 {
		t.Errorf("file has %d lines, want 1", got)
	}

	if _, err := store.Create(" "); err == nil {
		t.Error("empty query should be rejected")
	}
}
