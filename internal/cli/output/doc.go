// Package output renders staticserver CLI output.
//
//   - formatter.go: Formatter interface and factory (table, json, yaml)
//   - table.go: aligned tables with colored headers
//   - banner.go: the "server ready" banner
//   - spinner.go: progress animation while probing a server
//
// Colors are disabled automatically when stdout is not a terminal or
// NO_COLOR is set.
package output
