// cmd/api/movies.go
// This file contains all HTTP request handlers for the movies resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models.
package main

import (
	"net/http"
	"strings"

	"github.com/aoideee/movies/internal/data"
	"github.com/aoideee/movies/internal/validator"
	"github.com/pkg/errors"
)

// listMoviesHandler handles GET /movies.
// It returns every movie ordered by title inside the aggregate envelope
// {totalMovies, averageDuration, movies}.
func (app *applicationDependencies) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.models.Movies.GetAll(r.Context(), data.Filters{Sort: data.SortTitle})
	if err != nil {
		app.storageErrorResponse(w, r, err, msgListFailed)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.Summarize(movies), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createMovieHandler handles POST /movies.
// A title already in use (ignoring case) is rejected with 409 before any
// insert; the unique index catches the same conflict when two requests race.
// Responds 201 with an empty body.
func (app *applicationDependencies) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateMovieInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	input.Validate(v)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	movie, err := input.Movie()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.models.Movies.GetByTitle(r.Context(), movie.Title)
	switch {
	case err == nil:
		app.conflictResponse(w, r)
		return
	case !errors.Is(err, data.ErrRecordNotFound):
		app.storageErrorResponse(w, r, err, msgCreateFailed)
		return
	}

	err = app.models.Movies.Insert(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateTitle):
			app.conflictResponse(w, r)
		default:
			app.storageErrorResponse(w, r, err, msgCreateFailed)
		}
		return
	}

	app.requestLogger(r).Info().Int64("movie_id", movie.ID).Msg("movie created")
	w.WriteHeader(http.StatusCreated)
}

// updateMovieHandler handles PUT /movies/:id.
// Only the fields present in the body are changed; the updated movie is
// returned with its genre and language.
func (app *applicationDependencies) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.UpdateMovieInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	input.Validate(v)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	movie, err := app.models.Movies.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r, msgMovieNotFound)
		default:
			app.storageErrorResponse(w, r, err, msgUpdateFailed)
		}
		return
	}

	previousTitle := movie.Title
	if err := input.Apply(movie); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Renaming onto another movie's title is a conflict; changing only the
	// case of the movie's own title is not.
	if !strings.EqualFold(previousTitle, movie.Title) {
		other, err := app.models.Movies.GetByTitle(r.Context(), movie.Title)
		switch {
		case err == nil && other.ID != movie.ID:
			app.conflictResponse(w, r)
			return
		case err != nil && !errors.Is(err, data.ErrRecordNotFound):
			app.storageErrorResponse(w, r, err, msgUpdateFailed)
			return
		}
	}

	err = app.models.Movies.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r, msgMovieNotFound)
		case errors.Is(err, data.ErrDuplicateTitle):
			app.conflictResponse(w, r)
		default:
			app.storageErrorResponse(w, r, err, msgUpdateFailed)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteMovieHandler handles DELETE /movies/:id.
// Responds 200 with an empty body, or 404 if no movie with that id exists.
func (app *applicationDependencies) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.models.Movies.Get(r.Context(), id)
	if err == nil {
		err = app.models.Movies.Delete(r.Context(), id)
	}
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r, msgMovieNotFound)
		default:
			app.storageErrorResponse(w, r, err, msgDeleteFailed)
		}
		return
	}

	app.requestLogger(r).Info().Int64("movie_id", id).Msg("movie deleted")
	w.WriteHeader(http.StatusOK)
}

// sortMoviesHandler handles GET /movies/sort?sort=title|release_date|duration.
func (app *applicationDependencies) sortMoviesHandler(w http.ResponseWriter, r *http.Request) {
	sort := app.readString(r.URL.Query(), "sort", "")

	v := validator.New()
	data.ValidateSort(v, sort, true)
	if !v.Valid() {
		app.errorResponse(w, r, http.StatusBadRequest, msgSortInvalid, v.FieldErrors())
		return
	}

	movies, err := app.models.Movies.GetAll(r.Context(), data.Filters{Sort: sort})
	if err != nil {
		app.storageErrorResponse(w, r, err, msgSortFailed)
		return
	}

	if len(movies) == 0 {
		app.notFoundResponse(w, r, msgSortNotFound)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// languageMoviesHandler serves the code-only language filter routes:
//
//	GET /movies/filtered?language=<code>&sort=<key>
//	GET /movies/language/:language
//
// The code must be one of data.LanguageCodes; sort is optional.
func (app *applicationDependencies) languageMoviesHandler(w http.ResponseWriter, r *http.Request) {
	code := app.readParam(r, "language")
	if code == "" {
		code = app.readString(r.URL.Query(), "language", "")
	}
	app.moviesByLanguage(w, r, code)
}

// languageQueryHandler handles GET /movies/language?language=. Older clients
// send the display name ("Inglês") here, so a known name is accepted
// alongside the code.
func (app *applicationDependencies) languageQueryHandler(w http.ResponseWriter, r *http.Request) {
	code := app.readString(r.URL.Query(), "language", "")
	if byName, ok := data.LanguageCodeByName(code); ok {
		code = byName
	}
	app.moviesByLanguage(w, r, code)
}

// moviesByLanguage validates code and the optional sort, then lists the
// matching movies.
func (app *applicationDependencies) moviesByLanguage(w http.ResponseWriter, r *http.Request, code string) {
	sort := app.readString(r.URL.Query(), "sort", "")

	v := validator.New()
	data.ValidateLanguageCode(v, code)
	data.ValidateSort(v, sort, false)
	if !v.Valid() {
		message := msgSortInvalid
		switch {
		case code == "":
			message = msgLanguageRequired
		case v.Errors["language"] != "":
			message = msgLanguageInvalid
		}
		app.errorResponse(w, r, http.StatusBadRequest, message, v.FieldErrors())
		return
	}

	language, _ := data.LanguageByCode(code)

	movies, err := app.models.Movies.GetAll(r.Context(), data.Filters{Language: language, Sort: sort})
	if err != nil {
		app.storageErrorResponse(w, r, err, msgLanguageFailed)
		return
	}

	if len(movies) == 0 {
		app.notFoundResponse(w, r, msgLanguageNotFound+language)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// genreMoviesHandler handles GET /movies/genres/:genreName.
// The genre name is matched exactly, ignoring case.
func (app *applicationDependencies) genreMoviesHandler(w http.ResponseWriter, r *http.Request) {
	genre := app.readParam(r, "genreName")
	if genre == "" {
		app.errorResponse(w, r, http.StatusBadRequest, msgGenreRequired, nil)
		return
	}

	movies, err := app.models.Movies.GetAll(r.Context(), data.Filters{Genre: genre})
	if err != nil {
		app.storageErrorResponse(w, r, err, msgGenreFailed)
		return
	}

	if len(movies) == 0 {
		app.notFoundResponse(w, r, msgGenreNotFound)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
