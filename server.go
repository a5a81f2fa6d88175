package vista

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-barry/vista/core"
	"go.uber.org/zap"
)

type RuntimeConfig struct {
	Env         string
	EnableCache bool
	Port        int
}

var (
	ListenAndServe = http.ListenAndServe
	Exit           = os.Exit
)

const publicDir = "public"

// Start is a var so CLI commands can be exercised without a listener.
var Start = func(cfg RuntimeConfig) {
	fmt.Println("Starting vista in", cfg.Env, "mode...")

	addr, handler := BuildServer(cfg)

	fmt.Printf("✅ vista running at http://localhost%s\n", addr)
	if err := ListenAndServe(addr, handler); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Server failed:", err)
		Exit(1)
	}
}

// BuildServer assembles the mux for cfg without starting it.
func BuildServer(cfg RuntimeConfig) (string, http.Handler) {
	config := core.LoadConfigFunc(core.ConfigFile)
	config.CacheEnabled = config.CacheEnabled && cfg.EnableCache

	logger, err := core.NewLogger(config.DebugLogs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Logger unavailable:", err)
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/data/", makeDataHandler(config.DataDir, cfg.Env))

	app := core.NewApp(config, logger)

	if cfg.Env == "dev" {
		setupDevStaticRoutes(mux, publicDir)

		reloader := core.NewReloader()
		mux.HandleFunc("/__vista_reload", reloader.Handler)

		mux.Handle("/", core.NewRouter(app, core.RuntimeContext{
			Env:         cfg.Env,
			EnableWatch: true,
			OnReload:    reloader.BroadcastReload,
		}))
	} else {
		mux.Handle("/static/", makeStaticHandler(publicDir, filepath.Join(config.OutputDir, "static")))
		setupPublicFile(mux, "/favicon.ico", publicDir, "public, max-age=31536000, immutable")
		setupPublicFile(mux, "/robots.txt", publicDir, "public, max-age=31536000, immutable")

		mux.Handle("/", core.NewRouter(app, core.RuntimeContext{Env: cfg.Env}))
	}

	return fmt.Sprintf(":%d", cfg.Port), mux
}

func setupDevStaticRoutes(mux *http.ServeMux, publicDir string) {
	mux.Handle("/static/", http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		http.FileServer(http.Dir(publicDir)).ServeHTTP(w, r)
	})))
	setupPublicFile(mux, "/favicon.ico", publicDir, "no-store")
	setupPublicFile(mux, "/robots.txt", publicDir, "no-store")
}

func setupPublicFile(mux *http.ServeMux, route, publicDir, cacheControl string) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		http.ServeFile(w, r, filepath.Join(publicDir, strings.TrimPrefix(route, "/")))
	})
}

// makeStaticHandler serves /static/ from the minified cache first, with a
// gzip copy when the client accepts it, then falls back to publicDir.
func makeStaticHandler(publicDir, cacheDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel, ok := staticRelPath(r.URL.Path, "/static/")
		if !ok {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		cachedFile := filepath.Join(cacheDir, rel)
		if acceptsGzip(r) {
			if _, err := os.Stat(cachedFile + ".gz"); err == nil {
				w.Header().Set("Content-Type", detectMimeType(cachedFile))
				w.Header().Set("Content-Encoding", "gzip")
				w.Header().Set("Vary", "Accept-Encoding")
				serveFileWithHeaders(w, r, cachedFile+".gz", "public, max-age=31536000, immutable")
				return
			}
		}

		for _, file := range []string{cachedFile, filepath.Join(publicDir, rel)} {
			if _, err := os.Stat(file); err == nil {
				serveFileWithHeaders(w, r, file, "public, max-age=31536000, immutable")
				return
			}
		}

		http.NotFound(w, r)
	})
}

// makeDataHandler exposes the JSON resources views are built from, so
// pages can also fetch them directly.
func makeDataHandler(dataDir, env string) http.Handler {
	cacheControl := "public, max-age=300"
	if env == "dev" {
		cacheControl = "no-store"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel, ok := staticRelPath(r.URL.Path, "/data/")
		if !ok || filepath.Ext(rel) != ".json" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		file := filepath.Join(dataDir, rel)
		if _, err := os.Stat(file); err != nil {
			http.NotFound(w, r)
			return
		}

		if env == "prod" {
			data, err := os.ReadFile(file)
			if err != nil {
				http.Error(w, "Server error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", cacheControl)
			w.Write(core.MinifyBytes("application/json", data))
			return
		}

		serveFileWithHeaders(w, r, file, cacheControl)
	})
}

// staticRelPath strips prefix from path and rejects any ".." segment.
func staticRelPath(path, prefix string) (string, bool) {
	rel := strings.TrimPrefix(path, prefix)
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", false
		}
	}
	if rel == "" {
		return "", false
	}
	return filepath.FromSlash(rel), true
}

func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, path, cacheControl string) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", detectMimeType(path))
	}
	w.Header().Set("Cache-Control", cacheControl)
	http.ServeFile(w, r, path)
}

func detectMimeType(path string) string {
	switch filepath.Ext(path) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}
