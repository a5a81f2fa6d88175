package core

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"sync"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
	minjson "github.com/tdewolff/minify/v2/json"
)

var (
	minifierOnce sync.Once
	minifier     *minify.M
)

func sharedMinifier() *minify.M {
	minifierOnce.Do(func() {
		m := minify.New()
		m.AddFunc("text/html", minhtml.Minify)
		m.AddFunc("text/css", mincss.Minify)
		m.AddFunc("application/javascript", minjs.Minify)
		m.AddFunc("application/json", minjson.Minify)
		minifier = m
	})
	return minifier
}

var extMediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

// MinifyBytes minifies data for the given media type, returning data
// untouched if minification fails.
func MinifyBytes(mediaType string, data []byte) []byte {
	out, err := sharedMinifier().Bytes(mediaType, data)
	if err != nil {
		return data
	}
	return out
}

func writeGzip(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
