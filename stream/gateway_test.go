package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hdcinema/linkstream/index"
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

// fakeSource serves a fixed payload from any offset.
type fakeSource struct {
	payload []byte
	openErr error
}

func (f *fakeSource) Open(ctx context.Context, rec *types.FileRecord, offset int64) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	if offset > int64(len(f.payload)) {
		return nil, fmt.Errorf("offset out of payload")
	}
	return io.NopCloser(bytes.NewReader(f.payload[offset:])), nil
}

func testGateway(payload []byte) (*Gateway, string) {
	rec := &types.FileRecord{
		ID:       7,
		FileName: "some.movie.2021.mkv",
		FileSize: int64(len(payload)),
		MimeType: "video/x-matroska",
		FileRef:  "tg-file-ref",
	}
	idx := &fakeIndex{records: map[int64]*types.FileRecord{7: rec}}
	return NewGateway(idx, &fakeSource{payload: payload}), EncodeToken(7)
}

func TestStreamFullObject(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 128) // 1024 bytes
	gw, token := testGateway(payload)

	w := httptest.NewRecorder()
	if err := gw.Stream(context.Background(), w, token, ""); err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.Len(); got != len(payload) {
		t.Errorf("body length = %d, want %d", got, len(payload))
	}
	if cl := w.Header().Get("Content-Length"); cl != strconv.Itoa(len(payload)) {
		t.Errorf("Content-Length = %s, want %d", cl, len(payload))
	}
	if ar := w.Header().Get("Accept-Ranges"); ar != "bytes" {
		t.Errorf("Accept-Ranges = %q", ar)
	}
	if ct := w.Header().Get("Content-Type"); ct != "video/x-matroska" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestStreamPartialRange(t *testing.T) {
	payload := []byte("0123456789")
	gw, token := testGateway(payload)

	w := httptest.NewRecorder()
	if err := gw.Stream(context.Background(), w, token, "bytes=2-5"); err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if w.Code != 206 {
		t.Errorf("status = %d, want 206", w.Code)
	}
	if got := w.Body.String(); got != "2345" {
		t.Errorf("body = %q, want %q", got, "2345")
	}
	// Streamed byte count must match the advertised Content-Length and b-a+1.
	if cl := w.Header().Get("Content-Length"); cl != "4" {
		t.Errorf("Content-Length = %s, want 4", cl)
	}
	if cr := w.Header().Get("Content-Range"); cr != "bytes 2-5/10" {
		t.Errorf("Content-Range = %q", cr)
	}
}

func TestStreamInvalidRangeWritesNothing(t *testing.T) {
	gw, token := testGateway([]byte("0123456789"))

	for _, header := range []string{"bytes=0-10", "bytes=11-", "bytes=5-2", "bytes=x-y"} {
		w := httptest.NewRecorder()
		err := gw.Stream(context.Background(), w, token, header)
		if !errors.Is(err, ErrRange) {
			t.Errorf("header %q: expected ErrRange, got %v", header, err)
		}
		if w.Body.Len() != 0 {
			t.Errorf("header %q: %d bytes written, want 0", header, w.Body.Len())
		}
	}
}

func TestStreamUnknownToken(t *testing.T) {
	gw, _ := testGateway([]byte("0123456789"))

	for _, token := range []string{EncodeToken(424242), "garbage!!"} {
		w := httptest.NewRecorder()
		if err := gw.Stream(context.Background(), w, token, ""); !errors.Is(err, ErrNotFound) {
			t.Errorf("token %q: expected ErrNotFound, got %v", token, err)
		}
	}
}

func TestStreamUpstreamOpenFailure(t *testing.T) {
	rec := &types.FileRecord{ID: 7, FileName: "a.mkv", FileSize: 10}
	idx := &fakeIndex{records: map[int64]*types.FileRecord{7: rec}}
	gw := NewGateway(idx, &fakeSource{openErr: errors.New("upstream broke")})

	w := httptest.NewRecorder()
	err := gw.Stream(context.Background(), w, EncodeToken(7), "")
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrRange) {
		t.Fatalf("expected generic upstream error, got %v", err)
	}
}

func TestResolveCachesRecord(t *testing.T) {
	gw, token := testGateway([]byte("0123456789"))

	first, err := gw.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Drop the backing record; the cached one must still resolve.
	gw.idx.(*fakeIndex).records = nil
	second, err := gw.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve (cached): %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("cache returned a different record")
	}
}

func TestContentTypeFallbacks(t *testing.T) {
	byExt := contentType(&types.FileRecord{FileName: "movie.mp4"})
	if byExt != "video/mp4" {
		t.Errorf("extension fallback = %q, want video/mp4", byExt)
	}
	generic := contentType(&types.FileRecord{FileName: "noextension"})
	if generic != "application/octet-stream" {
		t.Errorf("generic fallback = %q", generic)
	}
}
