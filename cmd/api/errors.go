// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Every error body has the shape {"message": "...", "errors": [...]}.
package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/movies/internal/validator"
	"github.com/rs/zerolog"
)

// Fixed client-facing messages. Internal details are logged, never returned.
const (
	msgListFailed          = "Houve um problema ao buscar os filmes!"
	msgCreateFailed        = "Falha ao cadastrar um filme"
	msgDuplicateTitle      = "Já existe um filme cadastrado com esse título"
	msgMovieNotFound       = "Filme não encontrado!"
	msgUpdateFailed        = "Falha ao atualizar informações do filme"
	msgDeleteFailed        = "Não foi possível remover o filme!"
	msgSortNotFound        = "Nenhum filme encontrado."
	msgSortFailed          = "Houve um problema ao buscar os filmes."
	msgLanguageRequired    = "O parâmetro 'language' é obrigatório."
	msgLanguageInvalid     = "O parâmetro 'language' deve ser um dos códigos: en, fr, ptbr, jp, esp."
	msgSortInvalid         = "O parâmetro 'sort' deve ser um dos valores: title, release_date, duration."
	msgLanguageNotFound    = "Nenhum filme encontrado para a linguagem: "
	msgLanguageFailed      = "Erro ao buscar filmes pela linguagem!"
	msgGenreRequired       = "O nome do gênero é obrigatório."
	msgGenreNotFound       = "Gênero não encontrado!"
	msgGenreFailed         = "Falha ao filtrar filmes pelo gênero!"
	msgInvalidBody         = "Dados inválidos"
	msgServerError         = "O servidor encontrou um problema e não pôde processar sua requisição"
	msgRouteNotFound       = "Recurso não encontrado"
	msgRateLimitExceeded   = "Limite de requisições excedido"
	msgServiceUnavailable  = "Serviço indisponível"
	msgMethodNotAllowedFmt = "O método %s não é suportado por este recurso"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	Message string                 `json:"message"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}

// requestLogger returns the logger attached to r by the request middleware,
// falling back to the application logger.
func (app *applicationDependencies) requestLogger(r *http.Request) *zerolog.Logger {
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		return &app.logger
	}
	return logger
}

// logError logs an internal error with its stack and the request it came from.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.requestLogger(r).Error().
		Stack().
		Err(err).
		Str("request_method", r.Method).
		Str("request_url", r.URL.String()).
		Msg("request failed")
}

// errorResponse sends a JSON error body with the given status code.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors []validator.FieldError) {
	err := app.writeJSON(w, status, errorPayload{Message: message, Errors: fieldErrors}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// storageErrorResponse logs err and answers 500 with the handler's fixed message.
func (app *applicationDependencies) storageErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, message, nil)
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.storageErrorResponse(w, r, err, msgServerError)
}

// notFoundResponse sends a 404 with a handler-specific message.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusNotFound, message, nil)
}

// routeNotFoundResponse is installed as the router's NotFound handler.
func (app *applicationDependencies) routeNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.notFoundResponse(w, r, msgRouteNotFound)
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(msgMethodNotAllowedFmt, r.Method), nil)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
}

// failedValidationResponse sends a 400 listing the field-level errors
// collected by a Validator.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, v *validator.Validator) {
	app.errorResponse(w, r, http.StatusBadRequest, msgInvalidBody, v.FieldErrors())
}

// conflictResponse sends a 409 for a title that is already taken.
func (app *applicationDependencies) conflictResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusConflict, msgDuplicateTitle, nil)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, msgRateLimitExceeded, nil)
}
