package config

import (
	"fmt"

	"github.com/yndnr/staticserver-go/internal/server/httpserver"
	"github.com/yndnr/staticserver-go/pkg/launcher"
)

// ToLauncherConfig converts LauncherConfig to launcher.Config, resolving
// named middleware to their implementations.
func ToLauncherConfig(cfg *LauncherConfig) (launcher.Config, error) {
	if cfg == nil {
		return launcher.Config{}, fmt.Errorf("config is nil")
	}

	out := launcher.Config{
		Port: cfg.Port,
		Host: cfg.Host,
		Logging: launcher.Logging{
			Enabled: cfg.Log.Enabled,
			Dir:     cfg.Log.Dir,
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
		},
		Metrics: launcher.Metrics{Path: cfg.Metrics.Path},
		RateLimit: launcher.RateLimit{
			RPS:        cfg.RateLimit.RPS,
			Burst:      cfg.RateLimit.Burst,
			TrustProxy: cfg.RateLimit.TrustProxy,
		},
	}

	for _, f := range cfg.Folders {
		out.Folders = append(out.Folders, launcher.Folder{Path: f.Path, Mount: f.Mount})
	}

	if cfg.HTTPS.Enabled {
		out.HTTPS = &launcher.TLS{
			KeyPath:  cfg.HTTPS.KeyPath,
			CertPath: cfg.HTTPS.CertPath,
			Reload:   cfg.HTTPS.Reload,
		}
	}

	for i, m := range cfg.Middleware {
		mw, err := httpserver.Lookup(m.Name, m.Options)
		if err != nil {
			return launcher.Config{}, fmt.Errorf("middleware[%d]: %w", i, err)
		}
		out.Middleware = append(out.Middleware, launcher.MiddlewareMount{
			Mount:   m.Mount,
			Handler: mw,
		})
	}

	return out, nil
}
