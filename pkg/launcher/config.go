package launcher

import (
	"io"
	"net"
	"net/http"
)

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 4567

// LogFileName is the file created inside Logging.Dir.
const LogFileName = "static-server.txt"

// Config describes one static server instance.
type Config struct {
	// Folders are mounted in order. An empty list starts nothing.
	Folders []Folder

	Logging Logging

	// Port to bind; DefaultPort when zero.
	Port int

	// Host to bind; all interfaces when empty.
	Host string

	// Listener, when set, is used instead of binding Host:Port.
	Listener net.Listener

	// HTTPS enables TLS when non-nil.
	HTTPS *TLS

	// Middleware is mounted after all folders, in order.
	Middleware []MiddlewareMount

	Metrics Metrics

	RateLimit RateLimit
}

// Folder maps a directory to a URL mount path.
type Folder struct {
	Path  string
	Mount string
}

// Logging selects where diagnostics and the access log go.
//
// Disabled logging is silent. Enabled logging without Dir writes to Output
// (stdout by default). With Dir set, both go to Dir/static-server.txt,
// opened for append.
type Logging struct {
	Enabled bool
	Dir     string

	// Level defaults to debug when logging is enabled.
	Level string
	// Format is text or json.
	Format string
	Output io.Writer
}

// TLS points at PEM encoded key and certificate files.
type TLS struct {
	KeyPath  string
	CertPath string

	// Reload swaps the certificate when either file changes.
	Reload bool
}

// MiddlewareMount attaches a middleware at a URL prefix. The handler it
// receives continues with the layers mounted after it.
type MiddlewareMount struct {
	Mount   string
	Handler func(http.Handler) http.Handler
}

// Metrics exposes Prometheus metrics at Path. Empty Path disables.
type Metrics struct {
	Path string
}

// RateLimit limits requests per client IP. Zero RPS disables.
type RateLimit struct {
	RPS   float64
	Burst int
	// TrustProxy takes the client IP from X-Forwarded-For or X-Real-IP
	// instead of the connection address. Set it only behind a proxy.
	TrustProxy bool
}
