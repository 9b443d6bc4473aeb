package launcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/yndnr/staticserver-go/internal/infra/tlsroots"
	"github.com/yndnr/staticserver-go/internal/server/httpserver"
	"github.com/yndnr/staticserver-go/internal/telemetry/logger"
	"github.com/yndnr/staticserver-go/internal/telemetry/metric"
)

// Start builds the mount stack described by cfg, binds the listener and
// serves in the background. It returns once the server accepts connections.
//
// With no folders Start does nothing and returns an idle handle.
func Start(ctx context.Context, cfg Config) (*Handle, error) {
	if len(cfg.Folders) == 0 {
		return newIdleHandle(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	out, err := openSink(cfg.Logging)
	if err != nil {
		return nil, err
	}
	log := out.log

	h, err := start(ctx, cfg, port, out)
	if err != nil {
		out.close()
		return nil, err
	}
	log.Info("Static server running at " + h.url)
	return h, nil
}

func start(ctx context.Context, cfg Config, port int, out *sink) (*Handle, error) {
	log := out.log

	var reg *metric.Registry
	if cfg.Metrics.Path != "" {
		reg = metric.NewRegistry()
	}

	stack, err := buildStack(cfg, log, reg)
	if err != nil {
		return nil, err
	}

	opts := []httpserver.Option{httpserver.WithErrorLog(log.Slog())}

	var watcher *tlsroots.Watcher
	if cfg.HTTPS != nil {
		tlsCfg, w, err := loadTLS(ctx, cfg.HTTPS, log)
		if err != nil {
			return nil, err
		}
		watcher = w
		opts = append(opts, httpserver.WithTLSConfig(tlsCfg))
	}

	ln := cfg.Listener
	if ln == nil {
		var lc net.ListenConfig
		ln, err = lc.Listen(ctx, "tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(port)))
		if err != nil {
			if watcher != nil {
				watcher.Stop()
			}
			log.Error("failed to listen", "port", port, "error", err)
			return nil, fmt.Errorf("launcher: listen: %w", err)
		}
	}

	srv := httpserver.New(outerChain(stack, cfg, out, reg), opts...)

	h := &Handle{
		url:      serverURL(cfg.Host, ln.Addr(), port, srv.TLS()),
		listener: ln,
		server:   srv,
		watcher:  watcher,
		sink:     out,
		errc:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	go h.serve()
	return h, nil
}

// buildStack mounts folders, then middleware, then the metrics endpoint.
func buildStack(cfg Config, log logger.Logger, reg *metric.Registry) (*httpserver.Stack, error) {
	stack := httpserver.NewStack()

	for _, f := range cfg.Folders {
		if f.Path == "" {
			return nil, fmt.Errorf("launcher: folder at %q: %w", f.Mount, httpserver.ErrEmptyFolder)
		}
		dir, err := filepath.Abs(f.Path)
		if err != nil {
			return nil, fmt.Errorf("launcher: resolve folder %q: %w", f.Path, err)
		}
		log.Debug("mounting folder", "path", dir, "mount", f.Mount)
		if err := stack.Static(f.Mount, dir); err != nil {
			return nil, fmt.Errorf("launcher: mount folder %q at %q: %w", f.Path, f.Mount, err)
		}
	}

	for _, m := range cfg.Middleware {
		if err := stack.Use(m.Mount, httpserver.Middleware(m.Handler)); err != nil {
			return nil, fmt.Errorf("launcher: mount middleware at %q: %w", m.Mount, err)
		}
	}

	if reg != nil {
		reg.MountedFolders.Set(float64(len(cfg.Folders)))
		if err := stack.Handle(cfg.Metrics.Path, reg.Handler()); err != nil {
			return nil, fmt.Errorf("launcher: mount metrics at %q: %w", cfg.Metrics.Path, err)
		}
	}

	return stack, nil
}

// outerChain wraps the stack with the per-request middleware every server gets.
func outerChain(stack *httpserver.Stack, cfg Config, out *sink, reg *metric.Registry) http.Handler {
	mws := []httpserver.Middleware{
		httpserver.RequestID(out.log),
		httpserver.Recover(),
	}
	if out.access != nil {
		mws = append(mws, httpserver.AccessLog(out.access))
	}
	if reg != nil {
		mws = append(mws, httpserver.Metrics(reg))
	}
	if cfg.RateLimit.RPS > 0 {
		mws = append(mws, httpserver.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy))
	}
	return httpserver.Chain(stack, mws...)
}

func loadTLS(ctx context.Context, cfg *TLS, log logger.Logger) (*tls.Config, *tlsroots.Watcher, error) {
	cert, err := tlsroots.LoadKeyPair(ctx, cfg.KeyPath, cfg.CertPath)
	if err != nil {
		log.Error("failed to load TLS key pair",
			"key", cfg.KeyPath,
			"cert", cfg.CertPath,
			"error", err)
		return nil, nil, fmt.Errorf("launcher: %w", err)
	}

	if !cfg.Reload {
		return tlsroots.ServerTLSConfig(cert), nil, nil
	}

	w, err := tlsroots.NewWatcher(cfg.CertPath, cfg.KeyPath,
		tlsroots.WithLogger(log.Slog()),
		tlsroots.WithCertificate(cert),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("launcher: certificate watcher: %w", err)
	}
	w.StartAsync()
	return w.TLSConfig(), w, nil
}

// serverURL is the address clients should use. Wildcard and empty hosts
// are announced as localhost.
func serverURL(host string, addr net.Addr, port int, secure bool) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}

	if tcp, ok := addr.(*net.TCPAddr); ok && tcp.Port != 0 {
		port = tcp.Port
	}

	if host == "" {
		host = "localhost"
	} else if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
		host = "localhost"
	}

	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}
