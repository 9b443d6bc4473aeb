package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/staticserver-go/internal/cli/connection"
	"github.com/yndnr/staticserver-go/internal/cli/output"
	"github.com/yndnr/staticserver-go/internal/infra/tlsroots"
)

// ProbeCommand waits until a server answers requests.
func ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Wait until a server answers requests",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to request",
				Value: "/",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Give up after this long",
				Value: 10 * time.Second,
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Delay between attempts",
				Value: 100 * time.Millisecond,
			},
			&cli.StringFlag{
				Name:  "ca-file",
				Usage: "PEM certificate to trust in addition to the system roots",
			},
			&cli.BoolFlag{
				Name:  "insecure",
				Usage: "Skip TLS certificate verification",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not print progress",
			},
		},
		Action: probe,
	}
}

func probe(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("probe: expected exactly one URL argument")
	}

	roots := tlsroots.NewPool()
	if f := c.String("ca-file"); f != "" {
		if err := roots.AddCertFile(f); err != nil {
			return fmt.Errorf("probe: %w", err)
		}
	}
	tlsCfg := roots.ClientTLSConfig()
	tlsCfg.InsecureSkipVerify = c.Bool("insecure")

	client := connection.NewHTTPClient(c.Args().First(), connection.WithTLSConfig(tlsCfg))

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	var progress io.Writer = c.App.ErrWriter
	if c.Bool("quiet") {
		progress = io.Discard
	}
	spinner := output.NewSpinner(progress, "waiting for "+client.BaseURL())
	spinner.Start()

	status, err := client.WaitReady(ctx, c.String("path"), c.Duration("interval"))
	if err != nil {
		spinner.Fail(client.BaseURL() + " not ready")
		return fmt.Errorf("probe: %w", err)
	}
	spinner.Success(fmt.Sprintf("%s answered %d", client.BaseURL(), status))
	return nil
}
