package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yndnr/staticserver-go/internal/server/httpserver"
)

func TestToLauncherConfig(t *testing.T) {
	cfg := Default()
	cfg.Folders = []FolderSection{{Path: "./public", Mount: "/"}}
	cfg.Log = LogSection{Enabled: true, Dir: "./logs", Level: "info", Format: "json"}
	cfg.HTTPS = HTTPSSection{Enabled: true, KeyPath: "k.pem", CertPath: "c.pem", Reload: true}
	cfg.Middleware = []MiddlewareSection{{Mount: "/healthz", Name: "health"}}
	cfg.Metrics.Path = "/metrics"
	cfg.RateLimit = RateLimitSection{RPS: 5, Burst: 10, TrustProxy: true}

	out, err := ToLauncherConfig(cfg)
	if err != nil {
		t.Fatalf("ToLauncherConfig() error = %v", err)
	}

	if out.Port != DefaultPort {
		t.Errorf("Port = %d", out.Port)
	}
	if len(out.Folders) != 1 || out.Folders[0].Path != "./public" {
		t.Errorf("Folders = %+v", out.Folders)
	}
	if !out.Logging.Enabled || out.Logging.Dir != "./logs" || out.Logging.Level != "info" || out.Logging.Format != "json" {
		t.Errorf("Logging = %+v", out.Logging)
	}
	if out.HTTPS == nil || out.HTTPS.KeyPath != "k.pem" || out.HTTPS.CertPath != "c.pem" || !out.HTTPS.Reload {
		t.Errorf("HTTPS = %+v", out.HTTPS)
	}
	if out.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", out.Metrics)
	}
	if out.RateLimit.RPS != 5 || out.RateLimit.Burst != 10 || !out.RateLimit.TrustProxy {
		t.Errorf("RateLimit = %+v", out.RateLimit)
	}

	if len(out.Middleware) != 1 || out.Middleware[0].Mount != "/healthz" {
		t.Fatalf("Middleware = %+v", out.Middleware)
	}
	rec := httptest.NewRecorder()
	out.Middleware[0].Handler(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("health middleware = %d %q", rec.Code, rec.Body.String())
	}
}

func TestToLauncherConfig_HTTPSDisabled(t *testing.T) {
	cfg := Default()
	cfg.HTTPS = HTTPSSection{Enabled: false, KeyPath: "k.pem", CertPath: "c.pem"}

	out, err := ToLauncherConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if out.HTTPS != nil {
		t.Errorf("HTTPS = %+v, want nil when disabled", out.HTTPS)
	}
}

func TestToLauncherConfig_UnknownMiddleware(t *testing.T) {
	cfg := Default()
	cfg.Middleware = []MiddlewareSection{{Mount: "/", Name: "nope"}}

	_, err := ToLauncherConfig(cfg)
	if !errors.Is(err, httpserver.ErrUnknownMiddleware) {
		t.Errorf("error = %v, want ErrUnknownMiddleware", err)
	}
}

func TestToLauncherConfig_Nil(t *testing.T) {
	if _, err := ToLauncherConfig(nil); err == nil {
		t.Error("ToLauncherConfig(nil) should fail")
	}
}
