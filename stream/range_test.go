package stream

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name   string
		header string
		size   int64
		from   int64
		until  int64
		err    bool
	}{
		{name: "absent header means full object", header: "", size: 100, from: 0, until: 99},
		{name: "explicit range", header: "bytes=10-20", size: 100, from: 10, until: 20},
		{name: "open high bound", header: "bytes=50-", size: 100, from: 50, until: 99},
		{name: "single byte", header: "bytes=0-0", size: 100, from: 0, until: 0},
		{name: "last byte", header: "bytes=99-99", size: 100, from: 99, until: 99},
		{name: "until beyond size", header: "bytes=0-100", size: 100, err: true},
		{name: "until equal to size", header: "bytes=0-100", size: 100, err: true},
		{name: "negative from", header: "bytes=-5-10", size: 100, err: true},
		{name: "inverted", header: "bytes=20-10", size: 100, err: true},
		{name: "from beyond size", header: "bytes=100-", size: 100, err: true},
		{name: "not bytes unit", header: "chunks=0-10", size: 100, err: true},
		{name: "no dash", header: "bytes=10", size: 100, err: true},
		{name: "non numeric", header: "bytes=a-b", size: 100, err: true},
		{name: "zero size", header: "", size: 0, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, until, err := ParseRange(tt.header, tt.size)
			if tt.err {
				if !errors.Is(err, ErrRange) {
					t.Fatalf("expected ErrRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from != tt.from || until != tt.until {
				t.Errorf("got [%d,%d], want [%d,%d]", from, until, tt.from, tt.until)
			}
		})
	}
}
