// Package command defines the staticserver CLI using urfave/cli/v2:
//
//   - root.go: application, shared flags and helpers
//   - serve.go: start a server and wait for a signal (default command)
//   - probe.go: wait until a server answers
//   - middleware.go: list the built-in middleware names
//   - version.go: print build information
package command
