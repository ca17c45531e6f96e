package stream

import (
	"errors"
	"strconv"
	"strings"
)

// ErrRange covers both malformed Range headers and out-of-bounds offsets; the
// HTTP answer is 416 either way.
var ErrRange = errors.New("requested range not satisfiable")

// ParseRange parses an optional "bytes=from-until" header against the object
// size. An absent header means the full object; an empty high bound means
// size-1. The returned offsets always satisfy 0 <= from <= until < size.
func ParseRange(header string, size int64) (from, until int64, err error) {
	if size <= 0 {
		return 0, 0, ErrRange
	}
	if header == "" {
		return 0, size - 1, nil
	}
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return 0, 0, ErrRange
	}
	low, high, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, ErrRange
	}
	from, err = strconv.ParseInt(strings.TrimSpace(low), 10, 64)
	if err != nil {
		return 0, 0, ErrRange
	}
	if strings.TrimSpace(high) == "" {
		until = size - 1
	} else {
		until, err = strconv.ParseInt(strings.TrimSpace(high), 10, 64)
		if err != nil {
			return 0, 0, ErrRange
		}
	}
	if from < 0 || from > until || until >= size {
		return 0, 0, ErrRange
	}
	return from, until, nil
}
