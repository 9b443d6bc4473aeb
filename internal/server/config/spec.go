package config

import "time"

// LauncherConfig is the root configuration for staticserver.
type LauncherConfig struct {
	// Folders accepts a single mapping or a list in the file.
	Folders []FolderSection `koanf:"folders"`

	// Log accepts false, true, a directory string or a mapping.
	Log LogSection `koanf:"log"`

	Port int    `koanf:"port"`
	Host string `koanf:"host"`

	// HTTPS accepts false or a mapping.
	HTTPS HTTPSSection `koanf:"https"`

	Middleware []MiddlewareSection `koanf:"middleware"`
	Metrics    MetricsSection      `koanf:"metrics"`
	RateLimit  RateLimitSection    `koanf:"rate_limit"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// FolderSection maps a directory to a mount path.
type FolderSection struct {
	Path  string `koanf:"path"`
	Mount string `koanf:"mount"`
}

// LogSection configures diagnostics and the access log.
type LogSection struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	Level   string `koanf:"level"`
	Format  string `koanf:"format"`
}

// HTTPSSection configures TLS.
type HTTPSSection struct {
	Enabled  bool   `koanf:"enabled"`
	KeyPath  string `koanf:"key_path"`
	CertPath string `koanf:"cert_path"`
	Reload   bool   `koanf:"reload"`
}

// MiddlewareSection mounts a named built-in middleware.
type MiddlewareSection struct {
	Mount   string            `koanf:"mount"`
	Name    string            `koanf:"name"`
	Options map[string]string `koanf:"options"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Path string `koanf:"path"`
}

// RateLimitSection configures the per-client rate limit.
type RateLimitSection struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
	// TrustProxy keys clients by X-Forwarded-For / X-Real-IP.
	TrustProxy bool `koanf:"trust_proxy"`
}
