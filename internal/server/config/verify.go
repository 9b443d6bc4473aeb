package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/staticserver-go/internal/server/httpserver"
)

// Verify validates the configuration.
func Verify(cfg *LauncherConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := verifyFolders(cfg.Folders); err != nil {
		return err
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if err := verifyHTTPS(&cfg.HTTPS); err != nil {
		return err
	}
	if err := verifyMiddleware(cfg.Middleware); err != nil {
		return err
	}
	if cfg.Metrics.Path != "" {
		if _, err := httpserver.NormalizeMount(cfg.Metrics.Path); err != nil {
			return fmt.Errorf("metrics.path: %w", err)
		}
	}
	if cfg.RateLimit.RPS < 0 || cfg.RateLimit.Burst < 0 {
		return errors.New("rate_limit.rps and rate_limit.burst must not be negative")
	}
	if cfg.ShutdownTimeout < 0 {
		return errors.New("shutdown_timeout must not be negative")
	}
	return nil
}

func verifyFolders(folders []FolderSection) error {
	for i, f := range folders {
		if f.Path == "" {
			return fmt.Errorf("folders[%d].path is required", i)
		}
		if _, err := httpserver.NormalizeMount(f.Mount); err != nil {
			return fmt.Errorf("folders[%d].mount: %w", i, err)
		}
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "", "debug", "info", "warn", "warning", "error", "silent", "off":
	default:
		return fmt.Errorf("log.level %q is not a known level", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", cfg.Format)
	}
	return nil
}

func verifyHTTPS(cfg *HTTPSSection) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.KeyPath == "" {
		return errors.New("https.key_path is required when https is enabled")
	}
	if cfg.CertPath == "" {
		return errors.New("https.cert_path is required when https is enabled")
	}
	return nil
}

func verifyMiddleware(mws []MiddlewareSection) error {
	for i, m := range mws {
		if m.Name == "" {
			return fmt.Errorf("middleware[%d].name is required", i)
		}
		if _, err := httpserver.NormalizeMount(m.Mount); err != nil {
			return fmt.Errorf("middleware[%d].mount: %w", i, err)
		}
		if _, err := httpserver.Lookup(m.Name, m.Options); err != nil {
			return fmt.Errorf("middleware[%d]: %w", i, err)
		}
	}
	return nil
}
