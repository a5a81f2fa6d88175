package core

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/huandu/xstrings"
)

// View is what a navigation produces: a named template plus the params it
// is rendered with.
type View struct {
	Name   string         `json:"view"`
	Params map[string]any `json:"params"`
}

// TemplateFile is the view's template under viewsDir, e.g.
// TransitAddView -> transit_add_view.html.
func (v *View) TemplateFile(viewsDir string) string {
	return filepath.Join(viewsDir, xstrings.ToSnakeCase(v.Name)+".html")
}

type ViewConstructor func(params map[string]any) *View

type ViewRegistry struct {
	mu    sync.RWMutex
	views map[string]ViewConstructor
}

func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{views: map[string]ViewConstructor{}}
}

func DefaultViewRegistry() *ViewRegistry {
	r := NewViewRegistry()
	for _, name := range []string{"HomeView", "AboutView", "TransitAddView", "TransitShowView"} {
		r.Register(name, simpleView(name))
	}
	return r
}

func simpleView(name string) ViewConstructor {
	return func(params map[string]any) *View {
		if params == nil {
			params = map[string]any{}
		}
		return &View{Name: name, Params: params}
	}
}

func (r *ViewRegistry) Register(name string, ctor ViewConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[name] = ctor
}

func (r *ViewRegistry) New(name string, params map[string]any) (*View, error) {
	r.mu.RLock()
	ctor, ok := r.views[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownView)
	}
	return ctor(params), nil
}

func (r *ViewRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
