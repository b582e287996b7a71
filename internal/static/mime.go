package static

import (
	"mime"
	"path"
	"strings"
)

const (
	WasmContentType = "application/wasm"
	HTMLContentType = "text/html; charset=utf-8"
)

// ContentType returns the MIME type for name based on its extension, or ""
// when the extension is unknown. ".wasm" is always application/wasm,
// whatever the system MIME table says.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == ".wasm" {
		return WasmContentType
	}
	return mime.TypeByExtension(ext)
}
