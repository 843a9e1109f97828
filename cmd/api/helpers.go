// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// envelope wraps ad-hoc JSON objects such as the healthcheck body.
// Movie payloads are written as-is.
type envelope map[string]any

// errInvalidID is returned by readIDParam for anything but a positive integer.
var errInvalidID = errors.New("o parâmetro 'id' deve ser um número inteiro positivo")

// readIDParam extracts and validates the ":id" URL parameter added by httprouter.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// readParam returns the named URL parameter with surrounding whitespace removed.
func (app *applicationDependencies) readParam(r *http.Request, name string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSpace(params.ByName(name))
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := strings.TrimSpace(qs.Get(key))
	if s == "" {
		return defaultValue
	}
	return s
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.Wrap(err, "encode response")
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// readJSON decodes a single JSON value from the request body into dst.
// It enforces the size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data). Errors carry a
// message that is safe to show to the client.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		return decodeError(err)
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("o corpo da requisição deve conter um único valor JSON")
	}

	return nil
}

// decodeError translates json.Decoder failures into client-facing messages.
func decodeError(err error) error {
	var (
		syntaxError           *json.SyntaxError
		unmarshalTypeError    *json.UnmarshalTypeError
		invalidUnmarshalError *json.InvalidUnmarshalError
		maxBytesError         *http.MaxBytesError
	)

	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("o corpo da requisição contém JSON malformado (na posição %d)", syntaxError.Offset)

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("o corpo da requisição contém um tipo incorreto para o campo %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("o corpo da requisição contém um tipo JSON incorreto (na posição %d)", unmarshalTypeError.Offset)

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("o corpo da requisição não pode ter mais de %d bytes", maxBytesError.Limit)

	// dst was not a non-nil pointer.
	case errors.As(err, &invalidUnmarshalError):
		panic(err)

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return fmt.Errorf("o corpo da requisição contém o campo desconhecido %s", fieldName)

	case errors.Is(err, io.EOF):
		return errors.New("o corpo da requisição não pode estar vazio")

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("o corpo da requisição contém JSON malformado")
	}

	return err
}
