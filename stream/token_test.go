package stream

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 999999, 1<<40 + 7} {
		token := EncodeToken(id)
		got, err := DecodeToken(token)
		if err != nil {
			t.Fatalf("DecodeToken(%q): %v", token, err)
		}
		if got != id {
			t.Errorf("round trip %d: got %d", id, got)
		}
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"!!!not-base64!!!",
		"aGVsbG8",    // decodes but not numeric
		"LTU",        // -5
		"MA",         // 0
		"%%%",
	}
	for _, token := range cases {
		if _, err := DecodeToken(token); !errors.Is(err, ErrBadToken) {
			t.Errorf("DecodeToken(%q): expected ErrBadToken, got %v", token, err)
		}
	}
}
