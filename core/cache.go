package core

import (
	"os"
	"path/filepath"
	"strings"
)

// cacheFileFor maps a fragment onto a file in outputDir: "" is index.html,
// "a/b/" is a/b/index.html and "a/b" is a/b.html. Fragments with empty,
// "." or ".." segments have no file.
func cacheFileFor(config Config, fragment string) (string, bool) {
	if strings.ContainsAny(fragment, "?\\") {
		return "", false
	}
	if fragment == "" {
		return filepath.Join(config.OutputDir, "index.html"), true
	}

	dir, name := fragment, ""
	if !strings.HasSuffix(fragment, "/") {
		i := strings.LastIndex(fragment, "/")
		dir, name = fragment[:i+1], fragment[i+1:]
	}
	if dir != "" {
		for _, part := range strings.Split(strings.TrimSuffix(dir, "/"), "/") {
			if part == "" || part == "." || part == ".." {
				return "", false
			}
		}
	}

	file := "index.html"
	if name != "" {
		if name == "." || name == ".." {
			return "", false
		}
		file = name + ".html"
	}
	return filepath.Join(config.OutputDir, filepath.FromSlash(dir), file), true
}

func GetCachedHTML(config Config, fragment string) ([]byte, bool) {
	path, ok := cacheFileFor(config, fragment)
	if !ok {
		return nil, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return content, true
}

// SaveCachedHTML writes the page for fragment and a gzipped sibling.
func SaveCachedHTML(config Config, fragment string, html []byte) error {
	path, ok := cacheFileFor(config, fragment)
	if !ok {
		return ErrNotFound
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	if err := os.WriteFile(path, html, 0644); err != nil {
		return err
	}
	return writeGzip(path+".gz", html)
}

func ClearCachedHTML(config Config) error {
	return os.RemoveAll(config.OutputDir)
}
