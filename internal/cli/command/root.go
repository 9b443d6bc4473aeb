package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/staticserver-go/internal/cli/output"
	"github.com/yndnr/staticserver-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:           "staticserver",
		Usage:          "Serve static folders over HTTP or HTTPS",
		Version:        buildinfo.String(),
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			ServeCommand(),
			ProbeCommand(),
			MiddlewareCommand(),
			VersionCommand(),
		},
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: table, json, yaml",
		Value:   string(output.FormatTable),
	}
}

// formatter returns the formatter selected by --output.
func formatter(c *cli.Context) (output.Formatter, error) {
	f, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(f), nil
}
