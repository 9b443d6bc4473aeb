package launcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/yndnr/staticserver-go/internal/infra/tlsroots"
	"github.com/yndnr/staticserver-go/internal/server/httpserver"
)

// Handle controls a server started by Start.
type Handle struct {
	url      string
	listener net.Listener
	server   *httpserver.Server
	watcher  *tlsroots.Watcher
	sink     *sink

	errc chan error
	done chan struct{}

	shutdownOnce sync.Once
	shutdownErr  error
}

func newIdleHandle() *Handle {
	h := &Handle{
		errc: make(chan error),
		done: make(chan struct{}),
	}
	close(h.errc)
	close(h.done)
	return h
}

func (h *Handle) serve() {
	defer close(h.done)
	defer close(h.errc)

	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.sink.log.Error("static server stopped", "error", err)
		h.errc <- err
	}
}

// URL returns the base URL of the server, e.g. http://localhost:4567.
// It is empty for an idle handle.
func (h *Handle) URL() string {
	return h.url
}

// Addr returns the bound address, or nil for an idle handle.
func (h *Handle) Addr() net.Addr {
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// Port returns the bound TCP port, or 0 for an idle handle.
func (h *Handle) Port() int {
	if tcp, ok := h.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Idle reports whether Start was given no folders and nothing is running.
func (h *Handle) Idle() bool {
	return h.server == nil
}

// Err delivers at most one error if serving stops unexpectedly. The
// channel is closed once the server has stopped.
func (h *Handle) Err() <-chan error {
	return h.errc
}

// Done is closed when the server has stopped serving.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Shutdown gracefully stops the server, the certificate watcher and the
// log file. It is safe to call more than once.
func (h *Handle) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		if h.server == nil {
			return
		}

		var errs []error
		if err := h.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			select {
			case <-h.done:
			case <-ctx.Done():
				errs = append(errs, ctx.Err())
			}
		}

		if h.watcher != nil {
			h.watcher.Stop()
		}
		if err := h.sink.close(); err != nil {
			errs = append(errs, err)
		}
		h.shutdownErr = errors.Join(errs...)
	})
	return h.shutdownErr
}
