// Package main provides the entry point for staticserver.
//
// staticserver mounts one or more folders at URL paths and serves them
// over HTTP or HTTPS until interrupted:
//
//	staticserver --folder ./public --port 8080
//	staticserver serve --config staticserver.yaml --log ./logs
//	staticserver probe --ca-file ca.pem https://localhost:4567
//	staticserver middleware
package main
