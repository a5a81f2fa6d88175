package cli

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/go-barry/vista/core"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Validate view templates, data sources and routes",
	Action: func(c *cli.Context) error {
		config := core.LoadConfigFunc(core.ConfigFile)
		app := core.NewApp(config, zap.NewNop())
		ctx := c.Context

		var failed bool

		data, err := app.Preload(ctx)
		if err != nil {
			failed = true
			fmt.Printf("❌ data → %v\n", err)
		} else {
			fmt.Printf("✅ data → %d sources\n", len(data))
		}

		for _, name := range app.Views.Names() {
			if _, err := core.ParseViewTemplate(config, "dev", &core.View{Name: name}); err != nil {
				failed = true
				fmt.Printf("❌ %s → parse error: %v\n", name, err)
			}
		}

		for _, route := range app.Routes.Routes() {
			fragment := sampleFragment(route.Pattern)

			view, err := app.Navigate(ctx, fragment)
			if err != nil {
				failed = true
				fmt.Printf("❌ /%s → %v\n", fragment, err)
				continue
			}

			tmpl, err := core.ParseViewTemplate(config, "dev", view)
			if err != nil {
				failed = true
				continue
			}

			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, "layout", view.Params); err != nil {
				failed = true
				fmt.Printf("❌ /%s → exec error: %v\n", fragment, err)
				continue
			}
			fmt.Printf("✅ /%s → %s\n", fragment, view.Name)
		}

		if failed {
			return cli.Exit("some views failed to render", 1)
		}

		fmt.Println("✅ All views validated successfully.")
		return nil
	},
}

var (
	optionalPart = regexp.MustCompile(`\([^()]*\)`)
	namedParam   = regexp.MustCompile(`:\w+`)
	splatParam   = regexp.MustCompile(`\*\w+`)
)

// sampleFragment turns a route pattern into a fragment the route matches,
// e.g. "subway/:id/edit" -> "subway/1/edit".
func sampleFragment(pattern string) string {
	for optionalPart.MatchString(pattern) {
		pattern = optionalPart.ReplaceAllString(pattern, "")
	}
	pattern = namedParam.ReplaceAllString(pattern, "1")
	return splatParam.ReplaceAllString(pattern, "")
}
