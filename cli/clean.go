package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-barry/vista/core"
	"github.com/urfave/cli/v2"
)

var CleanCommand = &cli.Command{
	Name:      "clean",
	Usage:     "Delete cached HTML from the output directory (default: outputDir in vista.config.yml)",
	ArgsUsage: "[route (optional)]",
	Action: func(c *cli.Context) error {
		config := core.LoadConfigFunc(core.ConfigFile)
		target := config.OutputDir

		if c.Args().Len() > 0 {
			route := strings.Trim(c.Args().Get(0), "/")
			for _, part := range strings.Split(route, "/") {
				if part == ".." {
					return cli.Exit("route must stay inside the output directory", 1)
				}
			}
			return cleanRoute(filepath.Join(config.OutputDir, filepath.FromSlash(route)))
		}

		info, err := os.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("🧼 Nothing to clean:", target)
				return nil
			}
			return fmt.Errorf("failed to access path: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", target)
		}

		fmt.Println("🧹 Cleaning:", target)
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}

		fmt.Println("✅ Done.")
		return nil
	},
}

// cleanRoute removes the cached pages for one route: its directory (the
// page for "route/" and everything below it) and the "route.html" page
// with its gzip sibling.
func cleanRoute(target string) error {
	var found []string
	for _, path := range []string{target, target + ".html", target + ".html.gz"} {
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access path: %w", err)
		}
	}

	if len(found) == 0 {
		fmt.Println("🧼 Nothing to clean:", target)
		return nil
	}

	for _, path := range found {
		fmt.Println("🧹 Cleaning:", path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
	}

	fmt.Println("✅ Done.")
	return nil
}
