package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aoideee/movies/internal/config"
	"github.com/aoideee/movies/internal/data"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var testGenres = map[int64]data.Genre{
	1: {ID: 1, Name: "Ação"},
	2: {ID: 2, Name: "Drama"},
	3: {ID: 3, Name: "Ficção Científica"},
}

var testLanguages = map[int64]data.Language{
	1: {ID: 1, Name: "Inglês"},
	2: {ID: 2, Name: "Francês"},
	3: {ID: 3, Name: "Português"},
	4: {ID: 4, Name: "Japonês"},
	5: {ID: 5, Name: "Espanhol"},
}

// memStore is an in-memory data.MovieStore with the same filtering,
// ordering and uniqueness rules as MovieModel.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	movies map[int64]data.Movie
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, movies: make(map[int64]data.Movie)}
}

func (s *memStore) hydrate(m *data.Movie) error {
	genre, ok := testGenres[m.GenreID]
	if !ok {
		return errors.Errorf("genre %d violates foreign key", m.GenreID)
	}
	language, ok := testLanguages[m.LanguageID]
	if !ok {
		return errors.Errorf("language %d violates foreign key", m.LanguageID)
	}
	m.Genre, m.Language = genre, language
	return nil
}

func (s *memStore) titleTaken(title string, except int64) bool {
	for id, m := range s.movies {
		if id != except && strings.EqualFold(m.Title, title) {
			return true
		}
	}
	return false
}

func (s *memStore) Insert(_ context.Context, movie *data.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleTaken(movie.Title, 0) {
		return data.ErrDuplicateTitle
	}
	if err := s.hydrate(movie); err != nil {
		return err
	}
	movie.ID = s.nextID
	s.nextID++
	s.movies[movie.ID] = *movie
	return nil
}

func (s *memStore) Get(_ context.Context, id int64) (*data.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return &m, nil
}

func (s *memStore) GetByTitle(_ context.Context, title string) (*data.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.movies {
		if strings.EqualFold(m.Title, title) {
			return &m, nil
		}
	}
	return nil, data.ErrRecordNotFound
}

func (s *memStore) GetAll(_ context.Context, f data.Filters) ([]*data.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := []*data.Movie{}
	for _, m := range s.movies {
		if f.Language != "" && !strings.EqualFold(m.Language.Name, f.Language) {
			continue
		}
		if f.Genre != "" && !strings.EqualFold(m.Genre.Name, f.Genre) {
			continue
		}
		m := m
		movies = append(movies, &m)
	}

	sort.Slice(movies, func(i, j int) bool {
		a, b := movies[i], movies[j]
		switch f.Sort {
		case data.SortTitle:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case data.SortReleaseDate:
			if !a.ReleaseDate.Equal(b.ReleaseDate) {
				return a.ReleaseDate.After(b.ReleaseDate)
			}
		case data.SortDuration:
			switch {
			case a.Duration == nil && b.Duration == nil:
			case a.Duration == nil:
				return false
			case b.Duration == nil:
				return true
			case *a.Duration != *b.Duration:
				return *a.Duration < *b.Duration
			}
		}
		return a.ID < b.ID
	})
	return movies, nil
}

func (s *memStore) Update(_ context.Context, movie *data.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[movie.ID]; !ok {
		return data.ErrRecordNotFound
	}
	if s.titleTaken(movie.Title, movie.ID) {
		return data.ErrDuplicateTitle
	}
	if err := s.hydrate(movie); err != nil {
		return err
	}
	s.movies[movie.ID] = *movie
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(s.movies, id)
	return nil
}

// seed inserts movie and fails the test on error.
func (s *memStore) seed(t *testing.T, title string, duration *int32, released string, genreID, languageID int64) *data.Movie {
	t.Helper()

	date, err := time.Parse("2006-01-02", released)
	if err != nil {
		t.Fatal(err)
	}
	m := &data.Movie{Title: title, Duration: duration, ReleaseDate: date, GenreID: genreID, LanguageID: languageID}
	if err := s.Insert(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	return m
}

func minutes(n int32) *int32 { return &n }

// brokenStore fails every call with err, or panics when err is nil.
type brokenStore struct {
	err error
}

func (b brokenStore) fail() error {
	if b.err == nil {
		panic("storage exploded")
	}
	return b.err
}

func (b brokenStore) Insert(context.Context, *data.Movie) error { return b.fail() }
func (b brokenStore) Get(context.Context, int64) (*data.Movie, error) {
	return nil, b.fail()
}
func (b brokenStore) GetByTitle(context.Context, string) (*data.Movie, error) {
	return nil, b.fail()
}
func (b brokenStore) GetAll(context.Context, data.Filters) ([]*data.Movie, error) {
	return nil, b.fail()
}
func (b brokenStore) Update(context.Context, *data.Movie) error { return b.fail() }
func (b brokenStore) Delete(context.Context, int64) error { return b.fail() }

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

// newTestApplication returns an application backed by store with the rate
// limiter switched off and logging discarded.
func newTestApplication(store data.MovieStore) *applicationDependencies {
	cfg := config.Default()
	cfg.Limiter.Enabled = false

	return &applicationDependencies{
		config: cfg,
		logger: zerolog.Nop(),
		models: data.Models{Movies: store, DB: stubPinger{}},
	}
}

// send runs one request through the full middleware chain.
func send(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response body %q: %v", rr.Body.String(), err)
	}
	return v
}

func checkStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rr.Code != want {
		t.Fatalf("status = %d; want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}

func checkError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) errorPayload {
	t.Helper()

	checkStatus(t, rr, status)
	payload := decodeBody[errorPayload](t, rr)
	if payload.Message != message {
		t.Errorf("message = %q; want %q", payload.Message, message)
	}
	return payload
}
