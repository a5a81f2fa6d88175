package cli

import (
	"fmt"

	"github.com/go-barry/vista/helper"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"
)

var QueryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Parse a query string the way routes receive it",
	ArgsUsage: "<query string>",
	Action: func(c *cli.Context) error {
		params := helper.ParseQueryString(c.Args().First())

		out, err := json.MarshalIndent(params.Map(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode params: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

var SlugCommand = &cli.Command{
	Name:      "slug",
	Usage:     "Turn text into a URL-safe slug",
	ArgsUsage: "<text>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() == 0 {
			return cli.Exit("missing text to slug", 1)
		}
		for _, arg := range c.Args().Slice() {
			fmt.Println(helper.Parameterize(arg))
		}
		return nil
	},
}

var RoundCommand = &cli.Command{
	Name:      "round",
	Usage:     "Round a number to decimal places or to a step",
	ArgsUsage: "<number> [decimals]",
	Flags: []cli.Flag{
		&cli.Float64Flag{Name: "nearest", Usage: "round to the nearest multiple of this step"},
		&cli.Float64Flag{Name: "floor", Usage: "round down to a multiple of this step"},
		&cli.BoolFlag{Name: "decimal", Usage: "round the decimal form exactly instead of the float"},
	},
	Action: func(c *cli.Context) error {
		num, err := cast.ToFloat64E(c.Args().First())
		if err != nil {
			return cli.Exit(fmt.Sprintf("not a number: %q", c.Args().First()), 1)
		}

		dec := 0
		if c.Args().Len() > 1 {
			if dec, err = cast.ToIntE(c.Args().Get(1)); err != nil {
				return cli.Exit(fmt.Sprintf("not a decimal count: %q", c.Args().Get(1)), 1)
			}
		}

		switch {
		case c.IsSet("nearest"):
			fmt.Println(helper.RoundToNearest(num, c.Float64("nearest")))
		case c.IsSet("floor"):
			fmt.Println(helper.FloorToNearest(num, c.Float64("floor")))
		case c.Bool("decimal"):
			fmt.Println(helper.RoundDecimal(num, int32(dec)))
		default:
			fmt.Println(helper.Round(num, dec))
		}
		return nil
	},
}

var HaltonCommand = &cli.Command{
	Name:  "halton",
	Usage: "Print a Halton low-discrepancy sequence",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "base", Aliases: []string{"b"}, Value: 2, Usage: "sequence base"},
		&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 10, Usage: "number of values"},
		&cli.IntFlag{Name: "base-y", Usage: "print 2D points using this base for y"},
	},
	Action: func(c *cli.Context) error {
		base := c.Int("base")
		if base < 2 {
			return cli.Exit("base must be at least 2", 1)
		}

		if c.IsSet("base-y") {
			if c.Int("base-y") < 2 {
				return cli.Exit("base-y must be at least 2", 1)
			}
			for i, p := range helper.HaltonPoints(c.Int("count"), base, c.Int("base-y")) {
				fmt.Printf("%d\t%g\t%g\n", i, p.X, p.Y)
			}
			return nil
		}

		for i, v := range helper.HaltonSequence(c.Int("count"), base) {
			fmt.Printf("%d\t%g\n", i, v)
		}
		return nil
	},
}

var RandomCommand = &cli.Command{
	Name:      "random",
	Usage:     "Print a random identifier that starts with a letter",
	ArgsUsage: "[length]",
	Action: func(c *cli.Context) error {
		length := helper.DefaultRandomLength
		if c.Args().Len() > 0 {
			n, err := cast.ToIntE(c.Args().First())
			if err != nil || n < 1 {
				return cli.Exit(fmt.Sprintf("invalid length: %q", c.Args().First()), 1)
			}
			length = n
		}
		fmt.Println(helper.RandomString(length))
		return nil
	},
}
