// Package templates holds the embedded static pages served by the gateway.
package templates

import (
	"embed"
	"html/template"
	"io"
)

//go:embed watch.html
var files embed.FS

var watch = template.Must(template.ParseFS(files, "watch.html"))

// WatchPageData feeds the watch page template.
type WatchPageData struct {
	BrandName  string
	FileName   string
	FileSize   string
	FileURL    string
	Disclaimer string
}

// RenderWatch writes the watch page for one file.
func RenderWatch(w io.Writer, data WatchPageData) error {
	return watch.Execute(w, data)
}
