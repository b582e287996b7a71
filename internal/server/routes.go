package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/mapmaker/devserver/internal/static"
)

// addRoutes mounts the SPA on every path. Nothing else is routed: a path
// that isn't an asset belongs to the client-side router.
func addRoutes(r chi.Router, logger *slog.Logger, root *static.Root) {
	spa := handleSPA(logger, root)

	r.Handle("/*", spa)
	r.NotFound(spa)
}
