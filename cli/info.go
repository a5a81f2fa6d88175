package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-barry/vista/core"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print project structure and cache summary",
	Action: func(c *cli.Context) error {
		config := core.LoadConfigFunc(core.ConfigFile)
		app := core.NewApp(config, zap.NewNop())

		fmt.Println("📁 Output Directory:", config.OutputDir)
		fmt.Println("🔁 Cache Enabled:", config.CacheEnabled)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println("📄 Data:", dataLocation(config))
		fmt.Println()

		viewCount := 0
		for _, name := range app.Views.Names() {
			view := core.View{Name: name}
			if _, err := os.Stat(view.TemplateFile(config.ViewsDir)); err == nil {
				viewCount++
			} else {
				fmt.Println("⚠️  Missing template for", name)
			}
		}

		componentCount := countFiles(filepath.Join(config.ViewsDir, "components"), ".html")
		cacheCount := countFiles(config.OutputDir, ".html")

		fmt.Println("🛤️  Routes Found:", len(app.Routes.Routes()))
		fmt.Println("🗂️  Views Found:", viewCount)
		fmt.Println("📦 Components Found:", componentCount)
		fmt.Println("🔌 Data Sources:", len(config.Sources))
		fmt.Println("💾 Cached Pages:", cacheCount)

		return nil
	},
}

func dataLocation(config core.Config) string {
	if config.DataBaseURL != "" {
		return config.DataBaseURL
	}
	return config.DataDir
}

func countFiles(dir, ext string) int {
	count := 0
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(path, ext) {
			count++
		}
		return nil
	})
	return count
}
