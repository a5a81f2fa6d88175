package core

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/go-barry/vista/helper"
)

// MinifyAsset minifies a /static/ CSS or JS file into cacheDir in prod and
// returns the versioned URL of the minified copy. Any other path, or any
// failure, returns path unchanged.
func MinifyAsset(env, path string, cacheDir string) string {
	if env != "prod" {
		return path
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	mediaType, ok := extMediaTypes[ext]
	if !ok || ext == ".html" || strings.Contains(name, ".min") {
		return path
	}

	src := filepath.Join("public", strings.TrimPrefix(path, "/static/"))
	original, err := os.ReadFile(src)
	if err != nil {
		return path
	}

	minified, err := sharedMinifier().Bytes(mediaType, original)
	if err != nil {
		return path
	}

	out := filepath.Join(cacheDir, "static", name+".min"+ext)
	if err := os.MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
		return path
	}
	if err := os.WriteFile(out, minified, 0644); err != nil {
		return path
	}
	_ = writeGzip(out+".gz", minified)

	return fmt.Sprintf("/static/%s.min%s?v=%s", name, ext, shortHash(minified))
}

func shortHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])[:6]
}

// TemplateFuncs is the function set available to every view: sprig, the
// helper package, and a few asset helpers.
func TemplateFuncs(env, cacheDir string) template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	for name, fn := range helper.FuncMap() {
		funcs[name] = fn
	}

	funcs["minify"] = func(path string) string {
		return MinifyAsset(env, path, cacheDir)
	}
	funcs["props"] = func(values ...any) (map[string]any, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("props needs an even number of arguments, got %d", len(values))
		}
		m := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("props key %v is not a string", values[i])
			}
			m[key] = values[i+1]
		}
		return m, nil
	}
	funcs["safeHTML"] = func(s any) template.HTML {
		switch val := s.(type) {
		case template.HTML:
			return val
		case string:
			return template.HTML(val)
		default:
			return ""
		}
	}
	funcs["versioned"] = func(path string) string {
		if !strings.HasPrefix(path, "/static/") {
			return path
		}
		rel := strings.TrimPrefix(path, "/static/")
		for _, file := range []string{
			filepath.Join("public", rel),
			filepath.Join(cacheDir, "static", rel),
		} {
			if content, err := os.ReadFile(file); err == nil {
				return fmt.Sprintf("/static/%s?v=%s", rel, shortHash(content))
			}
		}
		return path
	}

	return funcs
}
