package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-artist-booking/internal/repository"
)

// The repositories run against MySQL in production; tests use an in-memory
// sqlite database with the same table shapes, which the portable SQL in the
// repositories (? placeholders, lexical DATETIME comparison) supports.

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

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// A second pool connection would see a different empty in-memory DB.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// dbTime formats now+offset in the repository timestamp layout.
func dbTime(offset time.Duration) string {
	return time.Now().UTC().Add(offset).Format(repository.TimeLayout)
}

func seedVenue(t *testing.T, r *repository.VenueRepo, name, city, state string) *repository.Venue {
	t.Helper()
	v := &repository.Venue{
		Name:      name,
		City:      city,
		State:     state,
		Genres:    []string{"Jazz"},
		ImageLink: "https://example.com/" + name + ".jpg",
	}
	require.NoError(t, r.Create(context.Background(), v))
	return v
}

func seedArtist(t *testing.T, r *repository.ArtistRepo, name string) *repository.Artist {
	t.Helper()
	a := &repository.Artist{
		Name:      name,
		City:      "San Francisco",
		State:     "CA",
		Genres:    []string{"Rock n Roll"},
		ImageLink: "https://example.com/" + name + ".jpg",
	}
	require.NoError(t, r.Create(context.Background(), a))
	return a
}

func seedShow(t *testing.T, r *repository.ShowRepo, artistID, venueID uint64, startTime string) *repository.Show {
	t.Helper()
	s := &repository.Show{ArtistID: artistID, VenueID: venueID, StartTime: startTime}
	require.NoError(t, r.Create(context.Background(), s))
	return s
}
