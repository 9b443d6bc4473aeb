package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrInvalidMount is returned for mount paths that do not start with "/".
	ErrInvalidMount = errors.New("httpserver: mount path must start with /")

	// ErrNilMiddleware is returned when a nil middleware or handler is mounted.
	ErrNilMiddleware = errors.New("httpserver: middleware is nil")

	// ErrEmptyFolder is returned when a folder layer has no directory.
	ErrEmptyFolder = errors.New("httpserver: folder path is empty")
)

// layerFunc handles a request whose path has been made relative to the
// layer mount. Calling next passes the request to the following layer.
type layerFunc func(w http.ResponseWriter, r *http.Request, next http.Handler)

type layer struct {
	mount string
	serve layerFunc
	next  http.Handler
}

// mountedRequestKey holds the request as it reached the stack, before the
// mount prefix was stripped.
type mountedRequestKey struct{}

// Stack dispatches requests through mounted layers in registration order.
//
// A layer matches when its mount is a segment-aligned prefix of the request
// path. The layer sees the path with the mount stripped; layers that do not
// produce a response call next, and the request continues with its original
// path. Requests no layer answers get a 404.
type Stack struct {
	layers   []layer
	notFound http.Handler
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{notFound: http.HandlerFunc(http.NotFound)}
}

// Static mounts the directory dir at mount.
func (s *Stack) Static(mount, dir string) error {
	if dir == "" {
		return ErrEmptyFolder
	}
	m, err := NormalizeMount(mount)
	if err != nil {
		return err
	}
	s.add(m, newStatic(dir).serve)
	return nil
}

// Use mounts mw at mount. The handler mw wraps is the rest of the stack;
// mw is called once, here, so state it builds is shared by all requests.
func (s *Stack) Use(mount string, mw Middleware) error {
	if mw == nil {
		return ErrNilMiddleware
	}
	m, err := NormalizeMount(mount)
	if err != nil {
		return err
	}
	h := mw(s.resumeAt(len(s.layers) + 1))
	if h == nil {
		return ErrNilMiddleware
	}
	s.add(m, func(w http.ResponseWriter, r *http.Request, _ http.Handler) {
		h.ServeHTTP(w, r)
	})
	return nil
}

func (s *Stack) add(mount string, serve layerFunc) {
	s.layers = append(s.layers, layer{
		mount: mount,
		serve: serve,
		next:  s.resumeAt(len(s.layers) + 1),
	})
}

// resumeAt returns the handler a layer calls as next: dispatch continues at
// layer index following with the path the request had before the mount
// was stripped.
func (s *Stack) resumeAt(following int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, inner *http.Request) {
		// Keep values the layer attached, restore the full path.
		orig := mountedRequest(inner)
		s.dispatch(following, w, orig.WithContext(inner.Context()))
	})
}

// mountedRequest returns r as it reached the current layer, before its
// mount prefix was stripped. Outside a stack it returns r.
func mountedRequest(r *http.Request) *http.Request {
	if orig, ok := r.Context().Value(mountedRequestKey{}).(*http.Request); ok {
		return orig
	}
	return r
}

// Handle mounts a terminal handler at mount.
func (s *Stack) Handle(mount string, h http.Handler) error {
	if h == nil {
		return ErrNilMiddleware
	}
	return s.Use(mount, func(http.Handler) http.Handler { return h })
}

// Len returns the number of mounted layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Mounts returns the mount path of every layer in dispatch order.
func (s *Stack) Mounts() []string {
	mounts := make([]string, len(s.layers))
	for i, l := range s.layers {
		mounts[i] = l.mount
	}
	return mounts
}

func (s *Stack) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.dispatch(0, w, r)
}

func (s *Stack) dispatch(start int, w http.ResponseWriter, r *http.Request) {
	for i := start; i < len(s.layers); i++ {
		l := s.layers[i]
		rel, ok := matchMount(l.mount, r.URL.Path)
		if !ok {
			continue
		}
		ctx := context.WithValue(r.Context(), mountedRequestKey{}, r)
		l.serve(w, withPath(r.WithContext(ctx), rel), l.next)
		return
	}
	s.notFound.ServeHTTP(w, r)
}

// NormalizeMount validates a mount path and strips any trailing slash.
// The empty string mounts at the root.
func NormalizeMount(mount string) (string, error) {
	if mount == "" {
		return "/", nil
	}
	if !strings.HasPrefix(mount, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidMount, mount)
	}
	if len(mount) > 1 {
		mount = strings.TrimRight(mount, "/")
		if mount == "" {
			mount = "/"
		}
	}
	return mount, nil
}

// matchMount reports whether mount covers p and returns p relative to it.
func matchMount(mount, p string) (string, bool) {
	if mount == "/" {
		return p, true
	}
	if p == mount {
		return "/", true
	}
	if strings.HasPrefix(p, mount+"/") {
		return p[len(mount):], true
	}
	return "", false
}

// withPath returns a shallow copy of r with its URL path replaced.
func withPath(r *http.Request, p string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = p
	r2.URL.RawPath = ""
	return r2
}
