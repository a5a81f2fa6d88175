package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFetcher_LoadsFromDir(t *testing.T) {
	cfg := newTestProject(t)
	f := NewFetcher(cfg, zap.NewNop())

	data, err := f.Fetch(context.Background(), "about.json").Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	about, ok := data.(map[string]any)
	if !ok || about["name"] != "Charles" {
		t.Errorf("unexpected about data: %#v", data)
	}
}

func TestFetcher_MissingFileIsNotFound(t *testing.T) {
	cfg := newTestProject(t)
	f := NewFetcher(cfg, zap.NewNop())

	_, err := f.Fetch(context.Background(), "nope.json").Await(context.Background())
	if !IsNotFoundError(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Name != "nope.json" {
		t.Errorf("expected FetchError naming the file, got %v", err)
	}
}

func TestFetcher_StaysInsideDir(t *testing.T) {
	cfg := newTestProject(t)
	f := NewFetcher(cfg, zap.NewNop())

	_, err := f.Fetch(context.Background(), "../views/layout.html").Await(context.Background())
	if !IsNotFoundError(err) {
		t.Errorf("expected traversal to resolve inside data dir and miss, got %v", err)
	}
}

func TestFetcher_InvalidJSON(t *testing.T) {
	cfg := newTestProject(t)
	writeTempFile(t, cfg.DataDir, "broken.json", `{"title": `)
	f := NewFetcher(cfg, zap.NewNop())

	_, err := f.Fetch(context.Background(), "broken.json").Await(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || IsNotFoundError(err) {
		t.Errorf("expected decode FetchError, got %v", err)
	}
}

func TestFetcher_LoadsOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/brian.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"title": "Remote"}`))
		case "/data/broken.json":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.DataBaseURL = server.URL + "/data"
	f := NewFetcher(cfg, zap.NewNop())
	ctx := context.Background()

	data, err := f.Fetch(ctx, "brian.json").Await(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.(map[string]any)["title"] != "Remote" {
		t.Errorf("unexpected data: %#v", data)
	}

	if _, err := f.Fetch(ctx, "missing.json").Await(ctx); !IsNotFoundError(err) {
		t.Errorf("expected not found for 404, got %v", err)
	}
	if _, err := f.Fetch(ctx, "broken.json").Await(ctx); err == nil || IsNotFoundError(err) {
		t.Errorf("expected status error for 500, got %v", err)
	}
}

func TestPending_AwaitHonoursContext(t *testing.T) {
	p := &Pending{name: "slow.json", done: make(chan struct{})}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := p.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	p.resolve("late", nil)
	select {
	case <-p.Done():
	default:
		t.Error("expected Done to be closed after resolve")
	}
}

func TestFetcher_ReturnsBeforeCompletion(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.DataBaseURL = server.URL
	f := NewFetcher(cfg, zap.NewNop())

	p := f.Fetch(context.Background(), "brian.json")
	select {
	case <-p.Done():
		t.Fatal("expected fetch to still be pending")
	default:
	}

	close(release)
	if _, err := p.Await(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
