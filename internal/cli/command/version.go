package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/staticserver-go/internal/infra/buildinfo"
)

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Flags:  []cli.Flag{outputFlag()},
		Action: showVersion,
	}
}

func showVersion(c *cli.Context) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}
	info := buildinfo.Get()
	return f.Format(c.App.Writer, map[string]string{
		"version":    info.Version,
		"commit":     info.Commit,
		"build_time": info.BuildTime,
		"go_version": info.GoVersion,
	})
}
