// Package site serves the embedded docket console: a single page that reads
// the dashboard, allocation and simulation endpoints and drives day runs.
package site

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// console is the static directory with its prefix stripped. The embed
// pattern guarantees the directory exists.
var console = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}()

// Register attaches the console to mux at "/". Paths that are not embedded
// files return 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", Handler())
}

// Handler serves the console files for GET and HEAD. Other methods get 404
// like the API routes.
func Handler() http.Handler {
	files := http.FileServer(http.FS(console))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
}
