package core

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type RuntimeContext struct {
	Env         string
	EnableWatch bool
	OnReload    func()
}

type Router struct {
	app      *App
	config   Config
	env      string
	onReload func()
	logger   *zap.Logger

	mu        sync.RWMutex
	templates map[string]*template.Template
	watcher   *Watcher
}

const reloadScript = `<script>new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"/__vista_reload").onmessage=function(){location.reload()}</script>`

// NewRouter is a var so the server can be assembled around a stub router.
var NewRouter = func(app *App, ctx RuntimeContext) http.Handler {
	r := &Router{
		app:       app,
		config:    app.Config,
		env:       ctx.Env,
		onReload:  ctx.OnReload,
		logger:    loggerOrNop(app.Logger),
		templates: map[string]*template.Template{},
	}

	if ctx.EnableWatch {
		w, err := WatchDirs([]string{r.config.DataDir, r.config.ViewsDir}, r.handleChange, r.logger)
		if err != nil {
			r.logger.Warn("file watching disabled", zap.Error(err))
		} else {
			r.watcher = w
		}
	}

	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch {
	case strings.HasPrefix(req.URL.Path, "/api/"):
		r.serveAPI(w, req)
		return
	case req.URL.Path == "/__vista/current":
		r.serveState(w, req)
		return
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	fragment := Fragment(req.URL.Path, req.URL.RawQuery)
	cacheable := r.cacheable(fragment, req.URL.RawQuery)

	if cacheable {
		if html, ok := GetCachedHTML(r.config, fragment); ok {
			r.writeHTML(w, req, html, "", "HIT")
			return
		}
	}

	view, err := r.app.Navigate(req.Context(), fragment)
	if err != nil && !errors.Is(err, ErrStale) {
		r.writeError(w, req, err)
		return
	}

	html, err := r.render(view)
	if err != nil {
		r.logger.Error("render failed", zap.String("view", view.Name), zap.Error(err))
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if cacheable {
		if err := SaveCachedHTML(r.config, fragment, html); err != nil {
			r.logger.Warn("could not cache page", zap.String("fragment", fragment), zap.Error(err))
		}
	}

	r.writeHTML(w, req, html, view.Name, "MISS")
}

// cacheable reports whether the page for fragment may be served from and
// stored in the page cache. Only query-free fragments that a route accepts
// are cached, keyed by the fragment itself.
func (r *Router) cacheable(fragment, rawQuery string) bool {
	if r.env != "prod" || !r.config.CacheEnabled || rawQuery != "" {
		return false
	}
	if strings.Contains(fragment, "//") {
		return false
	}
	_, _, ok := r.app.Routes.Match(fragment)
	return ok
}

func (r *Router) render(view *View) ([]byte, error) {
	tmpl, err := r.template(view)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view.Params); err != nil {
		return nil, err
	}
	html := buf.Bytes()

	if r.env == "prod" {
		html = MinifyBytes("text/html", html)
	}
	if r.env == "dev" && r.onReload != nil {
		html = injectReloadScript(html)
	}
	return html, nil
}

// template returns the parsed templates for view. Parsed templates are
// kept outside dev.
func (r *Router) template(view *View) (*template.Template, error) {
	file := view.TemplateFile(r.config.ViewsDir)

	if r.env != "dev" {
		r.mu.RLock()
		tmpl, ok := r.templates[file]
		r.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	tmpl, err := ParseViewTemplate(r.config, r.env, view)
	if err != nil {
		return nil, err
	}

	if r.env != "dev" {
		r.mu.Lock()
		r.templates[file] = tmpl
		r.mu.Unlock()
	}
	return tmpl, nil
}

// ParseViewTemplate parses the layout, any shared components and the
// view's own file. Execute the result with the "layout" template.
func ParseViewTemplate(config Config, env string, view *View) (*template.Template, error) {
	file := view.TemplateFile(config.ViewsDir)
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("view %s has no template %s", view.Name, file)
	}

	layout := filepath.Join(config.ViewsDir, "layout.html")
	components, _ := filepath.Glob(filepath.Join(config.ViewsDir, "components", "*.html"))
	files := append([]string{layout, file}, components...)

	return template.New(filepath.Base(layout)).
		Funcs(TemplateFuncs(env, config.OutputDir)).
		ParseFiles(files...)
}

func (r *Router) writeHTML(w http.ResponseWriter, req *http.Request, html []byte, viewName, cacheStatus string) {
	etag := generateETag(html)
	w.Header().Set("ETag", etag)
	if r.config.DebugHeaders {
		if viewName != "" {
			w.Header().Set("X-Vista-View", viewName)
		}
		w.Header().Set("X-Vista-Cache", cacheStatus)
	}

	if match := req.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if req.Method == http.MethodHead {
		return
	}
	w.Write(html)
}

func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	var fetchErr *FetchError
	switch {
	case IsNotFoundError(err):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.As(err, &fetchErr):
		http.Error(w, fetchErr.Error(), http.StatusBadGateway)
	default:
		r.logger.Error("navigation failed", zap.String("path", req.URL.Path), zap.Error(err))
		http.Error(w, "Server error: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleChange runs when a watched data or view file changes.
func (r *Router) handleChange(path string) {
	r.logger.Debug("change detected", zap.String("file", path))
	r.Invalidate()
	if r.onReload != nil {
		r.onReload()
	}
}

// Invalidate drops parsed templates and cached pages.
func (r *Router) Invalidate() {
	r.mu.Lock()
	r.templates = map[string]*template.Template{}
	r.mu.Unlock()

	if r.config.CacheEnabled {
		if err := ClearCachedHTML(r.config); err != nil {
			r.logger.Warn("could not clear page cache", zap.Error(err))
		}
	}
}

func (r *Router) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}

func injectReloadScript(html []byte) []byte {
	i := bytes.LastIndex(html, []byte("</body>"))
	if i < 0 {
		return append(html, reloadScript...)
	}
	out := make([]byte, 0, len(html)+len(reloadScript))
	out = append(out, html[:i]...)
	out = append(out, reloadScript...)
	return append(out, html[i:]...)
}

func generateETag(data []byte) string {
	sum := md5.Sum(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
