package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/spaolacci/murmur3"
)

// indexFile is served for directory requests.
const indexFile = "index.html"

// staticHandler serves files from one directory and falls through on misses.
type staticHandler struct {
	root http.FileSystem
}

func newStatic(dir string) *staticHandler {
	return &staticHandler{root: http.Dir(dir)}
}

func (h *staticHandler) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		next.ServeHTTP(w, r)
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}
	if hasDotSegment(upath) {
		next.ServeHTTP(w, r)
		return
	}

	name := path.Clean(upath)
	f, err := h.root.Open(name)
	if err != nil {
		next.ServeHTTP(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		next.ServeHTTP(w, r)
		return
	}

	if info.IsDir() {
		// A request for the mount itself arrives as "/", so the trailing
		// slash is checked on the path as mounted.
		if full := mountedRequest(r).URL.Path; !strings.HasSuffix(full, "/") {
			redirectToDir(w, r, full)
			return
		}
		index, err := h.root.Open(path.Join(name, indexFile))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		defer index.Close()

		indexInfo, err := index.Stat()
		if err != nil || indexInfo.IsDir() {
			next.ServeHTTP(w, r)
			return
		}
		f, info = index, indexInfo
	}

	w.Header().Set("Cache-Control", "public, max-age=0")
	if w.Header().Get("ETag") == "" {
		w.Header().Set("ETag", weakETag(info))
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// redirectToDir issues a relative 301 to the same path with a trailing slash.
// Relative so that it stays correct under any mount prefix.
func redirectToDir(w http.ResponseWriter, r *http.Request, upath string) {
	target := path.Base(upath) + "/"
	if q := r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusMovedPermanently)
}

// hasDotSegment reports whether any path segment starts with a dot.
func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// weakETag derives a weak validator from file name, size and mtime.
func weakETag(info fs.FileInfo) string {
	h := murmur3.New64()
	fmt.Fprintf(h, "%s|%d|%d", info.Name(), info.Size(), info.ModTime().UnixNano())
	return fmt.Sprintf(`W/"%x-%x"`, info.Size(), h.Sum64())
}
