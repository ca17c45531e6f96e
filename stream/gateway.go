package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hdcinema/linkstream/index"
	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

// ErrNotFound means the token decoded but no file record exists for it, or the
// token didn't decode at all. Either way the client sees the same 404.
var ErrNotFound = errors.New("file not found")

const recordCacheTTL = 300 * time.Second

var (
	downloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkstream_downloads_total",
		Help: "Download requests by outcome.",
	}, []string{"status"})

	downloadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkstream_download_bytes_total",
		Help: "Total bytes streamed to clients.",
	})

	activeDownloads = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linkstream_active_downloads",
		Help: "In-progress media streams.",
	})
)

// ChunkSource opens a lazy byte stream of a remote file starting at offset.
type ChunkSource interface {
	Open(ctx context.Context, rec *types.FileRecord, offset int64) (io.ReadCloser, error)
}

// Gateway resolves stream tokens and proxies media bytes with range support.
type Gateway struct {
	idx    index.Index
	source ChunkSource
	// records caches resolved file records so repeated range requests for the
	// same file (video players issue many) skip the database.
	records *ttlworker.Cache[int64, *types.FileRecord]
}

func NewGateway(idx index.Index, source ChunkSource) *Gateway {
	return &Gateway{
		idx:     idx,
		source:  source,
		records: ttlworker.NewCache[int64, *types.FileRecord](recordCacheTTL),
	}
}

// Resolve decodes a token and loads the matching file record.
func (g *Gateway) Resolve(ctx context.Context, token string) (*types.FileRecord, error) {
	id, err := DecodeToken(token)
	if err != nil {
		return nil, ErrNotFound
	}
	if rec := g.records.Get(id); rec != nil {
		return rec, nil
	}
	rec, err := g.idx.Get(ctx, id)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	g.records.Set(id, rec)
	return rec, nil
}

// Stream serves one download request: resolve, validate range, open upstream,
// emit headers and copy exactly until-from+1 bytes. Returns ErrNotFound or
// ErrRange before anything is written; once headers are out, copy problems
// are logged but never surfaced as a response error.
func (g *Gateway) Stream(ctx context.Context, w http.ResponseWriter, token, rangeHeader string) error {
	activeDownloads.Inc()
	defer activeDownloads.Dec()

	rec, err := g.Resolve(ctx, token)
	if err != nil {
		downloadsTotal.WithLabelValues("not_found").Inc()
		return err
	}

	from, until, err := ParseRange(rangeHeader, rec.FileSize)
	if err != nil {
		downloadsTotal.WithLabelValues("bad_range").Inc()
		return err
	}
	length := until - from + 1

	body, err := g.source.Open(ctx, rec, from)
	if err != nil {
		downloadsTotal.WithLabelValues("upstream_error").Inc()
		return fmt.Errorf("opening upstream stream for file %d: %w", rec.ID, err)
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType(rec))
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", from, until, rec.FileSize))
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.FileName))
	w.Header().Set("Accept-Ranges", "bytes")
	if rangeHeader == "" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusPartialContent)
	}

	written, err := io.CopyN(w, body, length)
	downloadBytesTotal.Add(float64(written))
	if err != nil {
		if ctx.Err() != nil {
			// Client went away mid-stream. Not a fault.
			downloadsTotal.WithLabelValues("client_gone").Inc()
			tool.DefaultLogger.Debugf("[Stream] Client disconnected: file=%d, written=%d/%d", rec.ID, written, length)
			return nil
		}
		downloadsTotal.WithLabelValues("stream_error").Inc()
		tool.DefaultLogger.Errorf("[Stream] Transfer aborted: file=%d, written=%d/%d: %v", rec.ID, written, length, err)
		return nil
	}

	downloadsTotal.WithLabelValues("ok").Inc()
	return nil
}

func contentType(rec *types.FileRecord) string {
	if rec.MimeType != "" {
		return rec.MimeType
	}
	if mt := mime.TypeByExtension(filepath.Ext(rec.FileName)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
