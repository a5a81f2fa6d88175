package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-barry/vista/core"
	"github.com/urfave/cli/v2"
)

//go:embed _starter
var starterFS embed.FS

var InitCommand = &cli.Command{
	Name:  "init",
	Usage: "Create a new vista project from the default starter",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "force", Usage: "overwrite an existing project config"},
	},
	Action: func(c *cli.Context) error {
		targetDir, _ := os.Getwd()

		if _, err := os.Stat(filepath.Join(targetDir, core.ConfigFile)); err == nil && !c.Bool("force") {
			return cli.Exit(core.ConfigFile+" already exists (use --force to overwrite)", 1)
		}

		fmt.Println("🚀 Creating vista project in:", targetDir)

		if err := copyEmbeddedDir(starterFS, "_starter", targetDir); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Println("✅ Project created successfully.")
		fmt.Println("▶  Run: vista dev")
		return nil
	},
}

func copyEmbeddedDir(source fs.FS, sourceDir string, targetDir string) error {
	return fs.WalkDir(source, sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		targetPath := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(targetPath, os.ModePerm)
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
			return err
		}

		return os.WriteFile(targetPath, data, 0644)
	})
}
