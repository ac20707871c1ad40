// Package web serves the embedded single-page UI.
package web

import (
	"embed"
	"io"
	"net/http"
	"strings"
)

//go:embed static
var staticFS embed.FS

// Handler serves index.html at / and the assets under /static/.
// Directory paths are not listed.
func Handler() http.Handler {
	assets := http.FileServerFS(staticFS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/":
		case strings.HasSuffix(r.URL.Path, "/"):
			http.NotFound(w, r)
			return
		default:
			assets.ServeHTTP(w, r)
			return
		}

		f, err := staticFS.Open("static/index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.Copy(w, f)
	})
}
