package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-artist-booking/internal/handler"
	"github.com/iliyamo/venue-artist-booking/internal/repository"
	"github.com/iliyamo/venue-artist-booking/internal/router"
)

// Handler tests run the full route surface against an in-memory sqlite
// database. Redis is passed as nil so the cache and rate-limit middlewares
// are pass-through.

const testSchema = `
CREATE TABLE venues (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL,
    city                TEXT NOT NULL DEFAULT '',
    state               TEXT NOT NULL DEFAULT '',
    address             TEXT NOT NULL DEFAULT '',
    phone               TEXT NOT NULL DEFAULT '',
    genres              TEXT NOT NULL DEFAULT '[]',
    image_link          TEXT NOT NULL DEFAULT '',
    facebook_link       TEXT NOT NULL DEFAULT '',
    website             TEXT NOT NULL DEFAULT '',
    seeking_description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE artists (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL,
    city                TEXT NOT NULL DEFAULT '',
    state               TEXT NOT NULL DEFAULT '',
    phone               TEXT NOT NULL DEFAULT '',
    genres              TEXT NOT NULL DEFAULT '[]',
    image_link          TEXT NOT NULL DEFAULT '',
    website             TEXT NOT NULL DEFAULT '',
    facebook_link       TEXT NOT NULL DEFAULT '',
    seeking_description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE shows (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    artist_id         INTEGER NOT NULL REFERENCES artists (id) ON DELETE CASCADE,
    venue_id          INTEGER NOT NULL REFERENCES venues (id) ON DELETE CASCADE,
    venue_name        TEXT NOT NULL DEFAULT '',
    artist_name       TEXT NOT NULL DEFAULT '',
    artist_image_link TEXT NOT NULL DEFAULT '',
    venue_image_link  TEXT NOT NULL DEFAULT '',
    start_time        TEXT NOT NULL
);
`

type testApp struct {
	E     *echo.Echo
	DB    *sql.DB
	Shows *handler.ShowHandler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	venues := &handler.VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo}
	artists := &handler.ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo}
	shows := &handler.ShowHandler{ShowRepo: showRepo}

	e := echo.New()
	router.RegisterRoutes(e, venues, artists, shows, nil)
	return &testApp{E: e, DB: db, Shows: shows}
}

func (a *testApp) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	a.E.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// createVenue posts the create form and returns the new id.
func (a *testApp) createVenue(t *testing.T, form url.Values) uint64 {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/venues/create", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(decode(t, rec)["id"].(float64))
}

// createArtist posts the create form and returns the new id.
func (a *testApp) createArtist(t *testing.T, form url.Values) uint64 {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/artists/create", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(decode(t, rec)["id"].(float64))
}
