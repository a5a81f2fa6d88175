package cli

import (
	"github.com/go-barry/vista"

	"github.com/urfave/cli/v2"
)

var portFlag = &cli.IntFlag{
	Name:    "port",
	Aliases: []string{"p"},
	Value:   8080,
	Usage:   "port to listen on",
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start vista in dev mode (no caching, live reload)",
	Flags: []cli.Flag{portFlag},
	Action: func(c *cli.Context) error {
		cfg := vista.RuntimeConfig{
			Env:         "dev",
			EnableCache: false,
			Port:        c.Int("port"),
		}
		vista.Start(cfg)
		return nil
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start vista in production mode (caching on by default)",
	Flags: []cli.Flag{portFlag},
	Action: func(c *cli.Context) error {
		cfg := vista.RuntimeConfig{
			Env:         "prod",
			EnableCache: true,
			Port:        c.Int("port"),
		}
		vista.Start(cfg)
		return nil
	},
}
