package stream

import (
	"encoding/base64"
	"errors"
	"strconv"
)

// ErrBadToken means the path token does not decode to a numeric file reference.
var ErrBadToken = errors.New("invalid stream token")

// EncodeToken wraps a numeric file reference in URL-safe base64. This is
// obfuscation only, not access control: anyone holding the token can reverse
// it.
func EncodeToken(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrBadToken
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadToken
	}
	return id, nil
}
