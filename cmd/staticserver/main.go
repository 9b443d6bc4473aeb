package main

import (
	"os"

	"github.com/yndnr/staticserver-go/internal/cli/command"
	"github.com/yndnr/staticserver-go/internal/cli/output"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		output.Errorf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
