// Package linkstore persists permanent deep-links: short opaque ids mapped to
// the search query they replay. The table is an append-only flat file, one
// tab-separated record per line, loaded fully into memory at open.
package linkstore

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// idLength is how much of the hex UUID survives into the public link id.
const idLength = 10

type Store struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	entries map[string]string
}

// Open loads the flat file (creating it when missing) and keeps it open for
// appends.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening link file: %w", err)
	}

	entries := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		id, query, ok := strings.Cut(line, "\t")
		if !ok || id == "" {
			continue
		}
		entries[id] = query
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading link file: %w", err)
	}

	return &Store{path: path, file: f, entries: entries}, nil
}

// Create appends a new permanent link for the query and returns its id.
func (s *Store) Create(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty query")
	}
	// Queries are free text; keep the record single-line.
	query = strings.ReplaceAll(query, "\n", " ")
	query = strings.ReplaceAll(query, "\t", " ")

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.file, "%s\t%s\n", id, query); err != nil {
		return "", fmt.Errorf("appending link record: %w", err)
	}
	s.entries[id] = query
	return id, nil
}

// Lookup returns the stored query for a link id.
func (s *Store) Lookup(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	query, ok := s.entries[id]
	return query, ok
}

// Len reports how many permanent links exist.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
