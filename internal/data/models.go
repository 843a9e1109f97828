// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateTitle is returned when another movie already uses the
	// title, compared case-insensitively.
	ErrDuplicateTitle = errors.New("duplicate movie title")
)

// queryTimeout bounds every statement issued by the models.
const queryTimeout = 3 * time.Second

// MovieStore is the storage gateway for movies. MovieModel implements it
// against PostgreSQL; handler tests substitute an in-memory store.
type MovieStore interface {
	Insert(ctx context.Context, movie *Movie) error
	Get(ctx context.Context, id int64) (*Movie, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	GetAll(ctx context.Context, filters Filters) ([]*Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int64) error
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Movies MovieStore
	DB     Pinger
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Movies: MovieModel{DB: db},
		DB:     db,
	}
}

// uniqueTitleConstraint is the expression index on lower(title).
const uniqueTitleConstraint = "movies_title_lower_key"

// isDuplicateTitle reports whether err is a unique violation on the title index.
func isDuplicateTitle(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == uniqueTitleConstraint
}
