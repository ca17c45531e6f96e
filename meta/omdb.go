// Package meta enriches search queries with movie metadata from OMDb.
// Lookup failure is expected and non-fatal: the caller falls back to a
// minimal draft.
package meta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

const DefaultBaseURL = "https://www.omdbapi.com/"

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    tool.GetHttpClient(),
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type omdbPayload struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Poster   string `json:"Poster"`
	Rating   string `json:"imdbRating"`
	Genre    string `json:"Genre"`
	Runtime  string `json:"Runtime"`
	Plot     string `json:"Plot"`
}

// Enrich looks the query up by title. Release tags (resolution, rip source)
// are stripped before the lookup so "Dune 2021 1080p WEB-DL" still matches.
func (c *Client) Enrich(ctx context.Context, query string) (*types.MetaInfo, error) {
	title := CleanQuery(query)
	if title == "" {
		return nil, fmt.Errorf("empty query after cleanup")
	}

	u := fmt.Sprintf("%s?apikey=%s&t=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("omdb response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb status %d", resp.StatusCode)
	}

	var payload omdbPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("omdb decode: %w", err)
	}
	if payload.Response != "True" {
		return nil, fmt.Errorf("omdb: %s", payload.Error)
	}

	return &types.MetaInfo{
		Title:   orUnknown(payload.Title),
		Year:    orUnknown(payload.Year),
		Poster:  stripNA(payload.Poster),
		Rating:  orUnknown(payload.Rating),
		Genre:   orUnknown(payload.Genre),
		Runtime: orUnknown(payload.Runtime),
		Plot:    stripNA(payload.Plot),
	}, nil
}

// releaseTags are torrent-style suffixes that never belong to the title.
var releaseTags = map[string]bool{
	"480p": true, "720p": true, "1080p": true, "2160p": true, "4k": true,
	"webrip": true, "web-dl": true, "webdl": true, "bluray": true, "brrip": true,
	"hdrip": true, "dvdrip": true, "camrip": true, "hdtc": true, "hevc": true,
	"x264": true, "x265": true, "h264": true, "h265": true, "aac": true,
	"hindi": true, "dual": true, "audio": true, "esub": true,
}

// CleanQuery drops release tags and squeezes whitespace.
func CleanQuery(query string) string {
	fields := strings.Fields(query)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if releaseTags[strings.ToLower(f)] {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func orUnknown(v string) string {
	if v == "" || v == "N/A" {
		return types.UnknownValue
	}
	return v
}

func stripNA(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}
