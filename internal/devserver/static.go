package devserver

import (
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

// staticRelPath returns the sanitized path of a request below the prefix.
// Traversal, absolute paths and platform separators are rejected.
func (s *Server) staticRelPath(urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, s.prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(urlPath, s.prefix)
	if rel == "" {
		return "", false
	}

	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}

	// "/example//etc/passwd" leaves "/etc/passwd".
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	// Dot-segments are rejected before cleaning, which would hide them.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}

	return clean, true
}

// unsafePath reports whether a request below the prefix names a path that
// must never reach the file system.
func (s *Server) unsafePath(urlPath string) bool {
	rel := strings.TrimPrefix(urlPath, s.prefix)
	if rel == "" {
		return false
	}
	_, ok := s.staticRelPath(urlPath)
	return !ok
}

// serveApp serves an existing file below the prefix, or the index document
// for any other path so the client-side router can take over.
func (s *Server) serveApp(w http.ResponseWriter, r *http.Request) {
	if s.unsafePath(r.URL.Path) {
		http.NotFound(w, r)
		return
	}

	if rel, ok := s.staticRelPath(r.URL.Path); ok && rel != s.index {
		if s.serveFile(w, r, rel) {
			return
		}
	}
	if !s.serveFile(w, r, s.index) {
		s.logger.Warn("index document missing", "index", s.index)
		http.NotFound(w, r)
	}
}

// serveFile reports whether rel was an existing regular file.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, rel string) bool {
	f, err := s.files.Open(rel)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		return false
	}

	applyCacheHeaders(w, rel, rel == s.index)
	http.ServeContent(w, r, info.Name(), info.ModTime(), rs)
	return true
}

// applyCacheHeaders marks fingerprinted assets immutable. The index
// document is always revalidated so deploys take effect.
func applyCacheHeaders(w http.ResponseWriter, rel string, index bool) {
	switch {
	case index:
		w.Header().Set("Cache-Control", "no-cache")
	case isFingerprinted(rel):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	default:
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
}

// isFingerprinted reports whether the name carries a hex hash before its
// extension, e.g. "app.a1b2c3d4.wasm".
func isFingerprinted(filePath string) bool {
	parts := strings.Split(path.Base(filePath), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
