// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"
)

// routes registers all HTTP endpoints and returns the router wrapped in the
// middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	request logger → requestID → logRequest → recoverPanic → rateLimit → router
//
// httprouter does not allow a static segment and a wildcard at the same
// level, so genre filtering lives under /movies/genres/ rather than
// /movies/:genreName.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.routeNotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/docs", app.docsHandler)

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodPut, "/movies/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", app.deleteMovieHandler)

	router.HandlerFunc(http.MethodGet, "/movies/sort", app.sortMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/movies/filtered", app.languageMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/movies/language", app.languageQueryHandler)
	router.HandlerFunc(http.MethodGet, "/movies/language/:language", app.languageMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/movies/genres/:genreName", app.genreMoviesHandler)

	handler := app.recoverPanic(app.rateLimit(router))
	handler = app.logRequest(handler)
	handler = app.requestID(handler)
	return hlog.NewHandler(app.logger)(handler)
}
