package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownMiddleware is returned by Lookup for unregistered names.
var ErrUnknownMiddleware = errors.New("httpserver: unknown middleware")

// builtinFactory builds a middleware from string options.
type builtinFactory func(opts map[string]string) (Middleware, error)

var builtins = map[string]builtinFactory{
	"cors":     corsFactory,
	"headers":  headersFactory,
	"nocache":  func(map[string]string) (Middleware, error) { return NoCache(), nil },
	"spa":      spaFactory,
	"redirect": redirectFactory,
	"health":   func(map[string]string) (Middleware, error) { return Health(), nil },
}

// Lookup returns the built-in middleware registered under name, configured
// with opts. Used for middleware declared in configuration files, where Go
// functions cannot be expressed.
func Lookup(name string, opts map[string]string) (Middleware, error) {
	factory, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMiddleware, name)
	}
	mw, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("httpserver: middleware %s: %w", name, err)
	}
	return mw, nil
}

// BuiltinNames lists the names accepted by Lookup.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SPA serves file for every GET/HEAD that reaches it, so client-side routes
// of a single-page app resolve to its shell.
func SPA(file string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			f, err := os.Open(file)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil || info.IsDir() {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Cache-Control", "no-cache")
			http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		})
	}
}

// Redirect answers every request with a redirect to target.
func Redirect(target string, code int) Middleware {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, target, code)
		})
	}
}

// Health answers with 200 "ok"; harnesses poll it to detect readiness.
func Health() Middleware {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusOK)
			if r.Method != http.MethodHead {
				w.Write([]byte("ok\n"))
			}
		})
	}
}

func corsFactory(opts map[string]string) (Middleware, error) {
	var origins []string
	for _, o := range strings.Split(opts["origins"], ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return CORS(origins), nil
}

func headersFactory(opts map[string]string) (Middleware, error) {
	if len(opts) == 0 {
		return nil, errors.New("at least one header is required")
	}
	headers := make(map[string]string, len(opts))
	for k, v := range opts {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	return Headers(headers), nil
}

func spaFactory(opts map[string]string) (Middleware, error) {
	file := opts["file"]
	if file == "" {
		return nil, errors.New("option file is required")
	}
	return SPA(file), nil
}

func redirectFactory(opts map[string]string) (Middleware, error) {
	target := opts["to"]
	if target == "" {
		return nil, errors.New("option to is required")
	}
	code := http.StatusFound
	if v := opts["code"]; v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c < 300 || c > 399 {
			return nil, fmt.Errorf("option code: invalid redirect status %q", v)
		}
		code = c
	}
	return Redirect(target, code), nil
}
