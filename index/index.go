// Package index reads the media file database. The bot only searches and
// resolves records here; indexing itself is owned by a separate ingest
// process.
package index

import (
	"context"
	"errors"

	"github.com/hdcinema/linkstream/types"
)

// ErrNotFound means no record exists for the requested file reference.
var ErrNotFound = errors.New("file record not found")

// Index is the read-side interface over the file database.
type Index interface {
	Search(ctx context.Context, query string, limit int) ([]types.FileRecord, error)
	Get(ctx context.Context, id int64) (*types.FileRecord, error)
}
