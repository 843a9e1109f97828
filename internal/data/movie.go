// Package data provides the data models and database interaction logic
// for the movies catalogue.
package data

import (
	"strings"
	"time"

	"github.com/aoideee/movies/internal/validator"
	"github.com/pkg/errors"
)

// Genre is a row of the read-only "genres" lookup table.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Language is a row of the read-only "languages" lookup table.
// Name holds the display name, e.g. "Inglês".
type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie represents a single movie record stored in the database, hydrated
// with the genre and language it references.
type Movie struct {
	ID          int64     `json:"id"`           // Unique identifier assigned by the database
	Title       string    `json:"title"`        // Unique, compared case-insensitively
	Duration    *int32    `json:"duration"`     // Runtime in minutes, null when unknown
	OscarCount  *int32    `json:"oscar_count"`  // Number of Academy Awards, null when unknown
	ReleaseDate time.Time `json:"release_date"` // Release day, stored as a DATE
	GenreID     int64     `json:"genre_id"`
	LanguageID  int64     `json:"language_id"`
	Genre       Genre     `json:"genre"`
	Language    Language  `json:"language"`
}

// CreateMovieInput holds the fields a client must supply when creating a new movie.
type CreateMovieInput struct {
	Title       string `json:"title"        validate:"required,notblank,max=500"`
	GenreID     int64  `json:"genre_id"     validate:"required,gt=0"`
	LanguageID  int64  `json:"language_id"  validate:"required,gt=0"`
	OscarCount  *int32 `json:"oscar_count"  validate:"omitempty,min=0"`
	Duration    *int32 `json:"duration"     validate:"omitempty,min=0"`
	ReleaseDate string `json:"release_date" validate:"required"`
}

// Validate runs the struct tag rules and checks that release_date parses.
func (in CreateMovieInput) Validate(v *validator.Validator) {
	v.Struct(in)
	if in.ReleaseDate != "" {
		_, err := ParseReleaseDate(in.ReleaseDate)
		v.Check(err == nil, "release_date", "deve ser uma data válida (AAAA-MM-DD)")
	}
}

// Movie converts the validated input into a Movie ready for Insert.
func (in CreateMovieInput) Movie() (*Movie, error) {
	released, err := ParseReleaseDate(in.ReleaseDate)
	if err != nil {
		return nil, err
	}

	return &Movie{
		Title:       strings.TrimSpace(in.Title),
		GenreID:     in.GenreID,
		LanguageID:  in.LanguageID,
		OscarCount:  in.OscarCount,
		Duration:    in.Duration,
		ReleaseDate: released,
	}, nil
}

// UpdateMovieInput holds the fields a client may supply when partially updating a movie.
// Pointer fields are nil when the key is missing. OscarCount and Duration are
// nullable columns, so they also record an explicit null, which clears them.
type UpdateMovieInput struct {
	Title       *string       `json:"title"        validate:"omitempty,notblank,max=500"`
	GenreID     *int64        `json:"genre_id"     validate:"omitempty,gt=0"`
	LanguageID  *int64        `json:"language_id"  validate:"omitempty,gt=0"`
	OscarCount  OptionalInt32 `json:"oscar_count"`
	Duration    OptionalInt32 `json:"duration"`
	ReleaseDate *string       `json:"release_date"`
}

// releaseDate returns the trimmed release_date and whether it should be
// applied. A blank string counts as missing.
func (in UpdateMovieInput) releaseDate() (string, bool) {
	if in.ReleaseDate == nil {
		return "", false
	}
	s := strings.TrimSpace(*in.ReleaseDate)
	return s, s != ""
}

// Validate runs the struct tag rules on the fields that were provided.
func (in UpdateMovieInput) Validate(v *validator.Validator) {
	v.Struct(in)
	v.Check(in.OscarCount.nonNegative(), "oscar_count", "deve ser no mínimo 0")
	v.Check(in.Duration.nonNegative(), "duration", "deve ser no mínimo 0")
	if s, ok := in.releaseDate(); ok {
		_, err := ParseReleaseDate(s)
		v.Check(err == nil, "release_date", "deve ser uma data válida (AAAA-MM-DD)")
	}
}

// Apply copies the provided fields onto movie. A missing or blank
// release_date leaves the stored date untouched.
func (in UpdateMovieInput) Apply(movie *Movie) error {
	if in.Title != nil {
		movie.Title = strings.TrimSpace(*in.Title)
	}
	if in.GenreID != nil {
		movie.GenreID = *in.GenreID
	}
	if in.LanguageID != nil {
		movie.LanguageID = *in.LanguageID
	}
	if in.OscarCount.Set {
		movie.OscarCount = in.OscarCount.Value
	}
	if in.Duration.Set {
		movie.Duration = in.Duration.Value
	}
	if s, ok := in.releaseDate(); ok {
		released, err := ParseReleaseDate(s)
		if err != nil {
			return err
		}
		movie.ReleaseDate = released
	}
	return nil
}

// releaseDateLayouts are tried in order by ParseReleaseDate.
var releaseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseReleaseDate accepts a calendar date ("2021-10-22") or an RFC 3339
// timestamp and returns the UTC day it falls on.
func ParseReleaseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range releaseDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid release date %q", s)
}
