// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/catalog"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/inference"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

const testSecret = "test_secret_with_at_least_32_characters_for_testing"

// fakeCatalog records every call and serves canned movies.
type fakeCatalog struct {
	mu      sync.Mutex
	calls   map[string]int
	lastIDs []int
	movies  []models.Movie
	details map[int64]models.Movie
	err     error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		calls: map[string]int{},
		movies: []models.Movie{
			{ID: 1, Title: "Before Sunrise", Rating: 7.7, Genres: []string{"romance", "drama"}},
			{ID: 2, Title: "Blue Valentine", Rating: 6.9, Genres: []string{"drama"}},
		},
		details: map[int64]models.Movie{550: {ID: 550, Title: "Fight Club", Rating: 8.4, Genres: []string{"drama"}}},
	}
}

func (f *fakeCatalog) hit(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeCatalog) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeCatalog) DiscoverByGenres(_ context.Context, ids []int, _, _ int) ([]models.Movie, error) {
	f.hit("discover")
	f.mu.Lock()
	f.lastIDs = append([]int(nil), ids...)
	f.mu.Unlock()
	return f.movies, f.err
}

func (f *fakeCatalog) Search(context.Context, string, int) ([]models.Movie, error) {
	f.hit("search")
	return f.movies, f.err
}

func (f *fakeCatalog) Details(_ context.Context, id int64) (*models.Movie, error) {
	f.hit("details")
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.details[id]
	if !ok {
		return nil, &catalog.StatusError{StatusCode: http.StatusNotFound, Endpoint: "/movie/" + strconv.FormatInt(id, 10)}
	}
	return &m, nil
}

func (f *fakeCatalog) Popular(context.Context, int, int) ([]models.Movie, error) {
	f.hit("popular")
	return f.movies, f.err
}

func (f *fakeCatalog) Trending(context.Context, int) ([]models.Movie, error) {
	f.hit("trending")
	return f.movies, f.err
}

var _ catalog.Catalog = (*fakeCatalog)(nil)

// fixedInferrer answers every mood with the same result.
type fixedInferrer inference.Result

func (f fixedInferrer) Infer(context.Context, string) inference.Result {
	return inference.Result(f)
}

// memFavorites is an in-memory FavoriteStore.
type memFavorites struct {
	mu   sync.Mutex
	rows map[string]map[int64]models.Favorite
	err  error
}

func newMemFavorites() *memFavorites {
	return &memFavorites{rows: map[string]map[int64]models.Favorite{}}
}

func (m *memFavorites) Add(_ context.Context, userID string, req *models.FavoriteRequest) (*models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.rows[userID] == nil {
		m.rows[userID] = map[int64]models.Favorite{}
	}
	if _, ok := m.rows[userID][req.MovieID]; ok {
		return nil, database.ErrFavoriteExists
	}
	fav := models.Favorite{
		ID:      uuid.NewString(),
		UserID:  userID,
		MovieID: req.MovieID,
		Title:   req.Title,
		Genres:  req.Genres,
		AddedAt: time.Now().UTC(),
	}
	m.rows[userID][req.MovieID] = fav
	return &fav, nil
}

func (m *memFavorites) List(_ context.Context, userID string) ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Favorite{}
	for _, f := range m.rows[userID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

func (m *memFavorites) Remove(_ context.Context, userID string, movieID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.rows[userID], movieID)
	return nil
}

func (m *memFavorites) Exists(_ context.Context, userID string, movieID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.rows[userID][movieID]
	return ok, nil
}

func (m *memFavorites) Count(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return len(m.rows[userID]), nil
}

// memHistory is an in-memory HistoryStore.
type memHistory struct {
	mu        sync.Mutex
	entries   []models.HistoryEntry
	err       error
	appendErr error
	lastLimit int
}

func (m *memHistory) Append(_ context.Context, userID, mood string, genres []string, movieCount int) (*models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	e := models.HistoryEntry{ID: uuid.NewString(), UserID: userID, Mood: mood, Genres: genres, MovieCount: movieCount, SearchedAt: time.Now().UTC()}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *memHistory) List(_ context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := []models.HistoryEntry{}
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func (m *memHistory) Clear(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	kept := m.entries[:0]
	var n int64
	for _, e := range m.entries {
		if e.UserID == userID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return n, nil
}

func (m *memHistory) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, e := range m.entries {
		if e.ID == id && e.UserID == userID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memHistory) count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n
}

// testEnv is a fully wired router over fakes.
type testEnv struct {
	catalog   *fakeCatalog
	favorites database.FavoriteStore
	history   *memHistory
	inferrer  inference.Inferrer
	cfg       *config.Config
	store     StoreState
	server    http.Handler
}

type envOption func(*testEnv)

func withInferrer(inf inference.Inferrer) envOption {
	return func(e *testEnv) { e.inferrer = inf }
}

func withFavorites(store database.FavoriteStore) envOption {
	return func(e *testEnv) { e.favorites = store }
}

func withEnvironment(env string) envOption {
	return func(e *testEnv) { e.cfg.Server.Environment = env }
}

func withSecurity(mutate func(*config.SecurityConfig)) envOption {
	return func(e *testEnv) { mutate(&e.cfg.Security) }
}

func withStore(store StoreState) envOption {
	return func(e *testEnv) { e.store = store }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	env := &testEnv{
		catalog:   newFakeCatalog(),
		favorites: newMemFavorites(),
		history:   &memHistory{},
		inferrer:  fixedInferrer(inference.Ok([]string{"romance", "drama"})),
		cfg: &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Security: config.SecurityConfig{
				AuthMode:          auth.ModeJWT,
				JWTSecret:         testSecret,
				CORSOrigins:       []string{"http://localhost:5173"},
				RateLimitWindowMS: 60000,
				RateLimitMax:      1000,
			},
		},
	}
	for _, opt := range opts {
		opt(env)
	}

	identity, err := auth.NewMiddleware(env.cfg.Security)
	if err != nil {
		t.Fatalf("auth.NewMiddleware: %v", err)
	}

	engine := recommend.NewEngine(env.inferrer, env.catalog)
	handler := NewHandler(env.cfg, engine, env.catalog, env.favorites, env.history, env.store)
	env.server = NewRouter(handler, identity, NewChiMiddleware(NewChiMiddlewareConfig(env.cfg.Security))).Setup()
	return env
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.IssueToken(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return "Bearer " + token
}

// do sends a request through the router. body may be nil, a string or a
// value to marshal.
func (e *testEnv) do(t *testing.T, method, target, authorization string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

// envelope decodes the response body; data is left raw for the caller.
type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details []models.FieldError `json:"details"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// unavailableStore returns a handle whose open always fails.
func unavailableStore() *database.Handle {
	return database.NewHandle(func(context.Context) (*database.DB, error) {
		return nil, errors.New("connection refused")
	})
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	h := NewHandler(&config.Config{Server: config.ServerConfig{Environment: "production"}}, nil, nil, nil, nil, nil)
	if !h.production {
		t.Error("production flag not set")
	}

	if NewHandler(nil, nil, nil, nil, nil, nil).production {
		t.Error("nil config treated as production")
	}
}
