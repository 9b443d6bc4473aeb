// Package tlsroots provides TLS material handling for the static server.
//
//   - keypair.go: parallel key/certificate PEM loading and server TLS config
//   - watcher.go: certificate hot-reload via fsnotify
//   - roots.go: trust pool for clients probing a server with a private CA
package tlsroots
