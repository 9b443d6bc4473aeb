package tlsroots

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// LoadKeyPair reads the PEM key and certificate files concurrently and
// builds a certificate from them. Relative paths resolve against the
// working directory.
func LoadKeyPair(ctx context.Context, keyFile, certFile string) (tls.Certificate, error) {
	var keyPEM, certPEM []byte

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := readPEMFile(ctx, "key", keyFile)
		keyPEM = data
		return err
	})
	g.Go(func() error {
		data, err := readPEMFile(ctx, "cert", certFile)
		certPEM = data
		return err
	})
	if err := g.Wait(); err != nil {
		return tls.Certificate{}, err
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("tlsroots: load key pair: %w", err)
	}
	return cert, nil
}

func readPEMFile(ctx context.Context, kind, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: resolve %s file %s: %w", kind, path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: read %s file: %w", kind, err)
	}
	return data, nil
}

// ServerTLSConfig returns a server TLS config presenting cert.
func ServerTLSConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
}
