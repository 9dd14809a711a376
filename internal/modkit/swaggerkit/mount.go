// Package swaggerkit mounts Swagger UI over an OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "robots/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves doc at /docs/doc.json and the Swagger UI under /docs/ when enabled
// bare /docs redirects to the UI page so StripSlashes cannot loop it
func Mount(r phttp.Router, enabled bool, doc []byte) {
	if !enabled {
		return
	}
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/doc.json", serveDoc(doc))
	r.Handle("/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("robots"),
		httpSwagger.URL("/docs/doc.json"),
	))
}

func serveDoc(doc []byte) phttp.Handler {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	}
}
