package server

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/mapmaker/devserver/internal/static"
)

// handleSPA serves static files from root, falling back to index.html
// for any request that doesn't match a real file (SPA client-side routing).
func handleSPA(logger *slog.Logger, root *static.Root) http.HandlerFunc {
	return handleAsset(root, handleFallback(logger, root))
}

// handleAsset serves the file named by the request path. Requests that
// don't resolve to a file under root, and methods other than GET and
// HEAD, go to next.
func handleAsset(root *static.Root, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		asset, err := root.Open(r.URL.Path)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		defer asset.Close()

		// A directory index is only served under its slash-terminated URL
		// so relative links inside it resolve against the directory.
		if asset.DirIndex && !strings.HasSuffix(r.URL.Path, "/") {
			target := path.Clean("/"+r.URL.Path) + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			recordOutcome(r, servedRedirect, asset.Name)
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		recordOutcome(r, servedAsset, asset.Name)

		// ServeContent sniffs only when no type is set.
		if asset.ContentType != "" {
			w.Header().Set("Content-Type", asset.ContentType)
		}
		http.ServeContent(w, r, asset.Name, asset.Info.ModTime(), asset)
	}
}

// handleFallback always answers 200 with the fallback document, whatever
// the path or method. The document is read per request so a missing file
// is a 500 rather than a crash.
func handleFallback(logger *slog.Logger, root *static.Root) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := root.Index()
		if err != nil {
			recordOutcome(r, servedError, "")
			logger.Error("failed to read fallback document", "path", r.URL.Path, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		recordOutcome(r, servedFallback, "/"+static.IndexFile)

		w.Header().Set("Content-Type", static.HTMLContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(data)
		}
	}
}
