package static

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed css js
	fsys embed.FS

	ss fs.FS = fsys
)

// Static serves the embedded stylesheets and scripts below Prefix.
type Static struct {
	Prefix string
}

func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix(s.Prefix, http.FileServer(http.FS(ss))).ServeHTTP(w, r)
}
