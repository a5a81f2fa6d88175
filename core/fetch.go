package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
)

// Pending is the result of a fetch that may still be in flight.
type Pending struct {
	name string
	done chan struct{}
	data any
	err  error
}

func (p *Pending) Name() string { return p.name }

func (p *Pending) Done() <-chan struct{} { return p.done }

// Await blocks until the fetch completes or ctx ends.
func (p *Pending) Await(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.data, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pending) resolve(data any, err error) {
	p.data = data
	p.err = err
	close(p.done)
}

// FetchError reports a data resource that could not be loaded.
type FetchError struct {
	Name string
	Err  error
}

func (e *FetchError) Error() string {
	return "error loading " + e.Name + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher loads static JSON resources by name, either from a directory or
// relative to a base URL.
type Fetcher struct {
	BaseURL string
	Dir     string
	Client  *http.Client
	Logger  *zap.Logger
}

func NewFetcher(config Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		BaseURL: config.DataBaseURL,
		Dir:     config.DataDir,
		Client:  &http.Client{Timeout: config.FetchTimeout},
		Logger:  loggerOrNop(logger),
	}
}

// Fetch starts loading name and returns without waiting. Failures are
// logged and surface through Await; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, name string) *Pending {
	p := &Pending{name: name, done: make(chan struct{})}

	go func() {
		data, err := f.load(ctx, name)
		if err != nil {
			f.Logger.Error("error loading "+name, zap.Error(err))
			err = &FetchError{Name: name, Err: err}
		} else {
			f.Logger.Debug("got json", zap.String("file", name))
		}
		p.resolve(data, err)
	}()

	return p
}

func (f *Fetcher) load(ctx context.Context, name string) (any, error) {
	var (
		body io.ReadCloser
		err  error
	)
	if f.BaseURL != "" {
		body, err = f.openURL(ctx, name)
	} else {
		body, err = f.openFile(name)
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var data any
	if err := json.NewDecoder(body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data, nil
}

func (f *Fetcher) openFile(name string) (io.ReadCloser, error) {
	clean := filepath.Clean("/" + name)
	file, err := os.Open(filepath.Join(f.Dir, clean))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func (f *Fetcher) openURL(ctx context.Context, name string) (io.ReadCloser, error) {
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid data base URL: %w", err)
	}
	base.Path = path.Join("/", base.Path, strings.TrimPrefix(name, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
