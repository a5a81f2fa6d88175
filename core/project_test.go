package core

import (
	"path/filepath"
	"testing"
)

const testLayout = `{{ define "layout" }}<html><body>{{ template "content" . }}</body></html>{{ end }}`

// newTestProject lays out data and views in a temp dir and returns a
// config pointing at them.
func newTestProject(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	writeTempFile(t, dir, "data/about.json", `{"name": "Charles", "bio": "Transit maps"}`)
	writeTempFile(t, dir, "data/brian.json", `{"title": "Brian Lines", "lines": ["F", "G"]}`)

	writeTempFile(t, dir, "views/layout.html", testLayout)
	writeTempFile(t, dir, "views/home_view.html", `{{ define "content" }}<h1>Home</h1>{{ end }}`)
	writeTempFile(t, dir, "views/about_view.html", `{{ define "content" }}<h1>{{ .aboutData.name }}</h1>{{ end }}`)
	writeTempFile(t, dir, "views/transit_add_view.html",
		`{{ define "content" }}<h1>{{ .title }}</h1><p>line={{ .line }} zoom={{ .zoom }}</p>{{ end }}`)
	writeTempFile(t, dir, "views/transit_show_view.html", `{{ define "content" }}<h1>Show {{ .id }}</h1>{{ end }}`)

	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "cache")
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.ViewsDir = filepath.Join(dir, "views")
	cfg.Defaults = map[string]any{"zoom": "11", "line": "A"}
	return cfg
}
