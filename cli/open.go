package cli

import (
	"fmt"
	"strings"

	"github.com/go-barry/vista/core"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var OpenCommand = &cli.Command{
	Name:      "open",
	Usage:     "Navigate to a fragment without starting a server and print the view",
	ArgsUsage: "<fragment>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log navigation details"},
	},
	Action: func(c *cli.Context) error {
		config := core.LoadConfigFunc(core.ConfigFile)

		logger := zap.NewNop()
		if c.Bool("verbose") {
			l, err := core.NewLogger(true)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer l.Sync()
			logger = l
		}

		app := core.NewApp(config, logger)
		fragment := strings.TrimPrefix(c.Args().First(), "/")

		view, err := app.Navigate(c.Context, fragment)
		if err != nil {
			if core.IsNotFoundError(err) {
				return cli.Exit(fmt.Sprintf("❌ /%s → not found", fragment), 1)
			}
			return cli.Exit(fmt.Sprintf("❌ /%s → %v", fragment, err), 1)
		}

		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
