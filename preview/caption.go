package preview

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hdcinema/linkstream/types"
)

// BuildCaption renders the post caption from the structured fields. Title and
// year always appear; genre, rating and runtime only when known.
func BuildCaption(title, year, rating, genre, runtime string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s (%s)</b>", title, year)
	if known(genre) {
		fmt.Fprintf(&b, "\n🎭 Genre: %s", genre)
	}
	if known(rating) {
		fmt.Fprintf(&b, "\n⭐ Rating: %s/10", rating)
	}
	if known(runtime) {
		fmt.Fprintf(&b, "\n⏳ Runtime: %s", runtime)
	}
	return b.String()
}

func known(v string) bool {
	return v != "" && v != types.UnknownValue
}

// Details carries a parsed pipe-separated details edit.
type Details struct {
	Title   string
	Year    string
	Rating  string
	Genre   string
	Runtime string
	// Warning is set when the rating parses but falls outside [0,10]; the
	// edit still applies.
	Warning string
}

// ParseDetails expects exactly five pipe-separated fields:
// title | year | rating | genre | runtime.
func ParseDetails(text string) (*Details, error) {
	parts := strings.Split(text, "|")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 fields, got %d", ErrBadDetails, len(parts))
	}
	d := &Details{
		Title:   strings.TrimSpace(parts[0]),
		Year:    strings.TrimSpace(parts[1]),
		Rating:  strings.TrimSpace(parts[2]),
		Genre:   strings.TrimSpace(parts[3]),
		Runtime: strings.TrimSpace(parts[4]),
	}
	if d.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrBadDetails)
	}
	if known(d.Rating) {
		rating, err := strconv.ParseFloat(d.Rating, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rating %q is not a number", ErrBadDetails, d.Rating)
		}
		if rating < 0 || rating > 10 {
			d.Warning = fmt.Sprintf("rating %s is outside 0-10", d.Rating)
		}
	}
	return d, nil
}

// imageExtensions and imageHosts form the poster URL heuristic: scheme must
// be http(s), and either the path extension or the host must look like an
// image source.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

var imageHosts = map[string]bool{
	"m.media-amazon.com": true,
	"image.tmdb.org":     true,
	"img.omdbapi.com":    true,
	"telegra.ph":         true,
	"graph.org":          true,
}

// ValidPosterURL reports whether raw is acceptable as a poster image URL.
func ValidPosterURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	lower := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return imageHosts[strings.ToLower(u.Host)]
}
