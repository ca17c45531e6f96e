package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdcinema/linkstream/index"
	"github.com/hdcinema/linkstream/stream"
	"github.com/hdcinema/linkstream/types"
)

type fakeIndex struct {
	records map[int64]*types.FileRecord
}

func (f *fakeIndex) Search(ctx context.Context, query string, limit int) ([]types.FileRecord, error) {
	return nil, nil
}

func (f *fakeIndex) Get(ctx context.Context, id int64) (*types.FileRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, index.ErrNotFound
	}
	return rec, nil
}

type fakeSource struct {
	data []byte
}

func (f *fakeSource) Open(ctx context.Context, rec *types.FileRecord, offset int64) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data[offset:])), nil
}

func testRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := &types.FileRecord{
		ID:       42,
		FileName: "Dune.Part.Two.2024.mkv",
		FileSize: 10,
		MimeType: "video/x-matroska",
		FileRef:  "BAADAgAD42",
	}
	idx := &fakeIndex{records: map[int64]*types.FileRecord{42: rec}}
	gateway := stream.NewGateway(idx, &fakeSource{data: []byte("0123456789")})

	engine := gin.New()
	root := NewRootController()
	watch := NewWatchController(gateway, "https://files.example.com/")
	download := NewStreamController(gateway)

	engine.GET("/", root.HandleRoot)
	engine.GET("/watch/:token", watch.HandleWatch)
	engine.GET("/dl/:token", download.HandleStream)

	return engine, stream.EncodeToken(42)
}

func TestRootLiveness(t *testing.T) {
	engine, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"running","rebranded_by":"HD Cinema"}`, w.Body.String())
}

func TestStreamFullFile(t *testing.T) {
	engine, token := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dl/"+token, nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0123456789", w.Body.String())
	assert.Equal(t, "10", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
}

func TestStreamPartialRange(t *testing.T) {
	engine, token := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dl/"+token, nil)
	req.Header.Set("Range", "bytes=2-5")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "2345", w.Body.String())
	assert.Equal(t, "bytes 2-5/10", w.Header().Get("Content-Range"))
}

func TestStreamUnknownToken(t *testing.T) {
	engine, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dl/"+stream.EncodeToken(999), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid download link")
}

func TestStreamUnsatisfiableRange(t *testing.T) {
	engine, token := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dl/"+token, nil)
	req.Header.Set("Range", "bytes=50-60")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
}

func TestWatchPage(t *testing.T) {
	engine, token := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/watch/"+token, nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	body := w.Body.String()
	assert.Contains(t, body, "Dune Part Two 2024 Mkv")
	assert.Contains(t, body, "https://files.example.com/dl/"+token)
	assert.Contains(t, body, BrandName)
}

func TestWatchUnknownToken(t *testing.T) {
	engine, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/watch/"+stream.EncodeToken(7), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "File not found or access denied.")
}
