package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
)

// movieColumns selects a movie together with its genre and language. It is
// paired with movieJoins and scanned by scanMovie.
const movieColumns = `m.id, m.title, m.duration, m.oscar_count, m.release_date, m.genre_id, m.language_id,
		g.id, g.name, l.id, l.name`

const movieJoins = `INNER JOIN genres g ON g.id = m.genre_id
		INNER JOIN languages l ON l.id = m.language_id`

// MovieModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting movie records.
type MovieModel struct {
	DB *sql.DB // Shared database connection pool
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner, movie *Movie) error {
	return row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Duration,
		&movie.OscarCount,
		&movie.ReleaseDate,
		&movie.GenreID,
		&movie.LanguageID,
		&movie.Genre.ID,
		&movie.Genre.Name,
		&movie.Language.ID,
		&movie.Language.Name,
	)
}

// Insert adds a new movie record to the database and writes the
// database-assigned id back into movie. A unique violation on the title
// index is reported as ErrDuplicateTitle.
func (m MovieModel) Insert(ctx context.Context, movie *Movie) error {
	query := `
		INSERT INTO movies (title, duration, oscar_count, release_date, genre_id, language_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	args := []any{
		movie.Title,
		movie.Duration,
		movie.OscarCount,
		movie.ReleaseDate,
		movie.GenreID,
		movie.LanguageID,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&movie.ID)
	if err != nil {
		if isDuplicateTitle(err) {
			return ErrDuplicateTitle
		}
		return errors.Wrap(err, "insert movie")
	}
	return nil
}

// Get retrieves a single movie by its primary key.
// Returns ErrRecordNotFound if no movie with the given id exists.
func (m MovieModel) Get(ctx context.Context, id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT ` + movieColumns + `
		FROM movies m
		` + movieJoins + `
		WHERE m.id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var movie Movie
	err := scanMovie(m.DB.QueryRowContext(ctx, query, id), &movie)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, errors.Wrapf(err, "select movie %d", id)
		}
	}
	return &movie, nil
}

// GetByTitle retrieves the movie whose title equals title ignoring case.
// Returns ErrRecordNotFound if there is none.
func (m MovieModel) GetByTitle(ctx context.Context, title string) (*Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies m
		` + movieJoins + `
		WHERE lower(m.title) = lower($1)
		LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var movie Movie
	err := scanMovie(m.DB.QueryRowContext(ctx, query, title), &movie)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, errors.Wrap(err, "select movie by title")
		}
	}
	return &movie, nil
}

// GetAll retrieves every movie matching filters, hydrated with genre and
// language, in the order filters selects. Empty Language or Genre values
// match everything.
func (m MovieModel) GetAll(ctx context.Context, filters Filters) ([]*Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies m
		%s
		WHERE (lower(l.name) = lower($1) OR $1 = '')
		AND (lower(g.name) = lower($2) OR $2 = '')
		ORDER BY %s`, movieColumns, movieJoins, filters.orderBy())

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, filters.Language, filters.Genre)
	if err != nil {
		return nil, errors.Wrap(err, "select movies")
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		var movie Movie
		if err := scanMovie(rows, &movie); err != nil {
			return nil, errors.Wrap(err, "scan movie")
		}
		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate movies")
	}
	return movies, nil
}

// Update saves every column of movie and reloads it, so the genre and
// language reflect any changed references. Returns ErrRecordNotFound when the
// row has gone and ErrDuplicateTitle when the new title is taken.
func (m MovieModel) Update(ctx context.Context, movie *Movie) error {
	query := `
		WITH m AS (
			UPDATE movies
			SET title = $1, duration = $2, oscar_count = $3, release_date = $4,
				genre_id = $5, language_id = $6
			WHERE id = $7
			RETURNING id, title, duration, oscar_count, release_date, genre_id, language_id
		)
		SELECT ` + movieColumns + `
		FROM m
		` + movieJoins

	args := []any{
		movie.Title,
		movie.Duration,
		movie.OscarCount,
		movie.ReleaseDate,
		movie.GenreID,
		movie.LanguageID,
		movie.ID,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := scanMovie(m.DB.QueryRowContext(ctx, query, args...), movie)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case isDuplicateTitle(err):
			return ErrDuplicateTitle
		default:
			return errors.Wrapf(err, "update movie %d", movie.ID)
		}
	}
	return nil
}

// Delete removes the movie with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m MovieModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM movies WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return errors.Wrapf(err, "delete movie %d", id)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete movie rows affected")
	}

	// If no rows were deleted, the movie didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
