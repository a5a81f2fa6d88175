package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-barry/vista/core"
	"github.com/urfave/cli/v2"
)

func captureOutput(f func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// runCommand runs cmd as the only command of an app whose exit handler
// never calls os.Exit, and returns what it printed.
func runCommand(cmd *cli.Command, args ...string) (string, error) {
	app := &cli.App{
		Commands:       []*cli.Command{cmd},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	var err error
	out := captureOutput(func() {
		err = app.Run(append([]string{"vista", cmd.Name}, args...))
	})
	return out, err
}

func overrideLoadConfig(t *testing.T, cfg core.Config) {
	t.Helper()
	orig := core.LoadConfigFunc
	core.LoadConfigFunc = func(_ string) core.Config {
		return cfg
	}
	t.Cleanup(func() { core.LoadConfigFunc = orig })
}

// newStarterProject writes the starter into a temp dir and points the
// config loader at it.
func newStarterProject(t *testing.T) core.Config {
	t.Helper()
	dir := t.TempDir()
	if err := copyEmbeddedDir(starterFS, "_starter", dir); err != nil {
		t.Fatalf("failed to write starter: %v", err)
	}

	cfg := core.LoadConfig(filepath.Join(dir, core.ConfigFile))
	cfg.OutputDir = filepath.Join(dir, "cache")
	cfg.DataDir = filepath.Join(dir, cfg.DataDir)
	cfg.ViewsDir = filepath.Join(dir, cfg.ViewsDir)

	overrideLoadConfig(t, cfg)
	return cfg
}
