package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout       = 30 * time.Second
	ConnectionHttpClient *http.Client
	StreamHttpClient     *http.Client
)

func init() {
	ConnectionHttpClient = NewHTTPClient()
	StreamHttpClient = newStreamHTTPClient()
}

// NewHTTPClient creates the HTTP client used for short API calls (metadata
// lookups, Telegram getFile).
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
}

// newStreamHTTPClient creates the client used for media chunk transfers.
// No overall timeout: a large download legitimately runs for a long time and
// is bounded by the request context instead.
func newStreamHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: DefaultTimeout,
	}
	return &http.Client{
		Transport: transport,
	}
}

func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}

func GetStreamHttpClient() *http.Client {
	return StreamHttpClient
}
