package main

import (
	_ "embed"
	"net/http"
)

//go:embed docs/openapi.json
var openAPIDocument []byte

// docsHandler handles GET /docs and serves the embedded OpenAPI document.
func (app *applicationDependencies) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDocument)
}
