package tlsroots

import (
	"context"
	"crypto/tls"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadKeyPair(t *testing.T) {
	tmpDir := t.TempDir()
	certFile := filepath.Join(tmpDir, "server.crt")
	keyFile := filepath.Join(tmpDir, "server.key")
	generateTestCert(t, certFile, keyFile)

	cert, err := LoadKeyPair(context.Background(), keyFile, certFile)
	if err != nil {
		t.Fatalf("LoadKeyPair() error = %v", err)
	}
	if len(cert.Certificate) == 0 {
		t.Error("LoadKeyPair() returned empty certificate chain")
	}
}

func TestLoadKeyPair_RelativePaths(t *testing.T) {
	tmpDir := t.TempDir()
	generateTestCert(t, filepath.Join(tmpDir, "c.pem"), filepath.Join(tmpDir, "k.pem"))
	t.Chdir(tmpDir)

	if _, err := LoadKeyPair(context.Background(), "k.pem", "c.pem"); err != nil {
		t.Fatalf("LoadKeyPair() with relative paths error = %v", err)
	}
}

func TestLoadKeyPair_MissingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	certFile := filepath.Join(tmpDir, "server.crt")
	keyFile := filepath.Join(tmpDir, "server.key")
	generateTestCert(t, certFile, keyFile)

	tests := []struct {
		name     string
		key      string
		cert     string
		contains string
	}{
		{"missing key", filepath.Join(tmpDir, "nope.key"), certFile, "read key file"},
		{"missing cert", keyFile, filepath.Join(tmpDir, "nope.crt"), "read cert file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyPair(context.Background(), tt.key, tt.cert)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("error = %v, want fs.ErrNotExist", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoadKeyPair_InvalidPEM(t *testing.T) {
	tmpDir := t.TempDir()
	certFile := filepath.Join(tmpDir, "server.crt")
	keyFile := filepath.Join(tmpDir, "server.key")
	os.WriteFile(certFile, []byte("invalid"), 0644)
	os.WriteFile(keyFile, []byte("invalid"), 0600)

	if _, err := LoadKeyPair(context.Background(), keyFile, certFile); err == nil {
		t.Error("LoadKeyPair() expected error for invalid PEM")
	}
}

func TestLoadKeyPair_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadKeyPair(ctx, "any.key", "any.crt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestServerTLSConfig(t *testing.T) {
	cfg := ServerTLSConfig(tls.Certificate{})
	if len(cfg.Certificates) != 1 {
		t.Errorf("Certificates length = %d, want 1", len(cfg.Certificates))
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %x, want TLS 1.2", cfg.MinVersion)
	}
}
