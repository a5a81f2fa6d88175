package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-barry/vista/core"
	"github.com/urfave/cli/v2"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestCopyEmbeddedDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := copyEmbeddedDir(starterFS, "_starter", tmpDir); err != nil {
		t.Fatalf("unexpected error copying embedded dir: %v", err)
	}

	err := fs.WalkDir(starterFS, "_starter", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel("_starter", path)
		if err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(tmpDir, rel)); err != nil {
			t.Errorf("expected file %s to exist, but got error: %v", rel, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
}

func TestInitCommand_RunSuccess(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	if _, err := runCommand(InitCommand); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	expectedFiles := []string{
		core.ConfigFile,
		"data/about.json",
		"data/brian.json",
		"views/layout.html",
		"views/transit_add_view.html",
		"public/robots.txt",
	}
	for _, f := range expectedFiles {
		if _, err := os.Stat(filepath.Join(tmpDir, f)); err != nil {
			t.Errorf("expected file %s to exist, but got error: %v", f, err)
		}
	}

	cfg := core.LoadConfig(filepath.Join(tmpDir, core.ConfigFile))
	if cfg.Source("transit") != "brian.json" || cfg.Defaults["line"] != "A" {
		t.Errorf("unexpected starter config: %+v", cfg)
	}
}

func TestInitCommand_RefusesToOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	_ = os.WriteFile(filepath.Join(tmpDir, core.ConfigFile), []byte("cache: false\n"), 0644)

	_, err := runCommand(InitCommand)

	exitErr, ok := err.(cli.ExitCoder)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected cli.Exit code 1, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "data")); !os.IsNotExist(err) {
		t.Error("expected no starter files to be written")
	}

	if _, err := runCommand(InitCommand, "--force"); err != nil {
		t.Fatalf("expected --force to overwrite, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "data", "about.json")); err != nil {
		t.Errorf("expected starter data after --force: %v", err)
	}
}
