package main

import (
	"log"
	"os"

	vistacli "github.com/go-barry/vista/cli"
	clilib "github.com/urfave/cli/v2"
)

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "vista",
		Usage: "Server-rendered transit map views backed by JSON data",
		Commands: []*clilib.Command{
			vistacli.InitCommand,
			vistacli.DevCommand,
			vistacli.ProdCommand,
			vistacli.CleanCommand,
			vistacli.CheckCommand,
			vistacli.InfoCommand,
			vistacli.OpenCommand,
			vistacli.QueryCommand,
			vistacli.SlugCommand,
			vistacli.RoundCommand,
			vistacli.HaltonCommand,
			vistacli.RandomCommand,
		},
	}
	return app.Run(args)
}
