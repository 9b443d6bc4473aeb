package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/staticserver-go/internal/cli/output"
	"github.com/yndnr/staticserver-go/internal/server/httpserver"
)

// builtinUsage documents the options of each built-in middleware.
var builtinUsage = map[string]string{
	"cors":     "origins=ORIGIN[,ORIGIN...] (default *)",
	"headers":  "NAME=VALUE for each response header to set",
	"health":   "answers 200 ok",
	"nocache":  "disables client caching",
	"redirect": "to=URL [code=3xx]",
	"spa":      "file=PATH served for unmatched GET/HEAD",
}

// MiddlewareCommand lists the middleware usable from config files and --use.
func MiddlewareCommand() *cli.Command {
	return &cli.Command{
		Name:    "middleware",
		Aliases: []string{"mw"},
		Usage:   "List built-in middleware",
		Flags:   []cli.Flag{outputFlag()},
		Action:  listMiddleware,
	}
}

func listMiddleware(c *cli.Context) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}

	t := &output.Table{}
	t.SetHeaders("name", "options")
	for _, name := range httpserver.BuiltinNames() {
		t.AddRow(name, builtinUsage[name])
	}
	return f.Format(c.App.Writer, t)
}
