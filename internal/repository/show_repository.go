// This file defines the Show model and its repository. A Show is a scheduled
// pairing of one artist at one venue. Rows carry denormalized artist/venue
// name and image columns captured from the referenced records at creation
// time; the venue and artist repositories refresh those columns on edit.
// NOTE: Time strings are stored in DB format "2006-01-02 15:04:05" (UTC).
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Show represents a row in the shows table.
type Show struct {
	ID              uint64 // shows.id
	ArtistID        uint64 // shows.artist_id
	VenueID         uint64 // shows.venue_id
	VenueName       string // shows.venue_name (denormalized)
	ArtistName      string // shows.artist_name (denormalized)
	ArtistImageLink string // shows.artist_image_link (denormalized)
	VenueImageLink  string // shows.venue_image_link (denormalized)
	StartTime       string // shows.start_time ("YYYY-MM-DD HH:MM:SS" UTC)
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show. The referenced artist and venue are looked up
// inside the insert transaction; their current name and image_link are
// written into the denormalized columns, and any values the caller put in
// those fields are ignored. Returns ErrArtistNotFound or ErrVenueNotFound
// when a reference does not resolve, in which case nothing is persisted.
func (r *ShowRepo) Create(ctx context.Context, s *Show) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	err = tx.QueryRowContext(ctx, `SELECT name, image_link FROM artists WHERE id = ?`, s.ArtistID).
		Scan(&s.ArtistName, &s.ArtistImageLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	err = tx.QueryRowContext(ctx, `SELECT name, image_link FROM venues WHERE id = ?`, s.VenueID).
		Scan(&s.VenueName, &s.VenueImageLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	const q = `INSERT INTO shows (artist_id, venue_id, venue_name, artist_name, artist_image_link, venue_image_link, start_time)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		s.ArtistID, s.VenueID, s.VenueName, s.ArtistName,
		s.ArtistImageLink, s.VenueImageLink, s.StartTime,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show ordered by start time ascending.
func (r *ShowRepo) ListAll(ctx context.Context) ([]Show, error) {
	const q = `SELECT id, artist_id, venue_id, venue_name, artist_name, artist_image_link, venue_image_link, start_time
               FROM shows ORDER BY start_time ASC`
	return r.queryShows(ctx, q)
}

// ListPastByVenue returns the venue's shows with start_time at or before now,
// newest first. The caller supplies now as a DB-format string so the
// past/upcoming boundary matches across queries in the same request.
func (r *ShowRepo) ListPastByVenue(ctx context.Context, venueID uint64, now string) ([]Show, error) {
	const q = `SELECT id, artist_id, venue_id, venue_name, artist_name, artist_image_link, venue_image_link, start_time
               FROM shows WHERE venue_id = ? AND start_time <= ? ORDER BY start_time DESC`
	return r.queryShows(ctx, q, venueID, now)
}

// ListUpcomingByVenue returns the venue's shows with start_time strictly
// after now, soonest first.
func (r *ShowRepo) ListUpcomingByVenue(ctx context.Context, venueID uint64, now string) ([]Show, error) {
	const q = `SELECT id, artist_id, venue_id, venue_name, artist_name, artist_image_link, venue_image_link, start_time
               FROM shows WHERE venue_id = ? AND start_time > ? ORDER BY start_time ASC`
	return r.queryShows(ctx, q, venueID, now)
}

// ListPastByArtist returns the artist's shows with start_time at or before
// now, newest first.
func (r *ShowRepo) ListPastByArtist(ctx context.Context, artistID uint64, now string) ([]Show, error) {
	const q = `SELECT id, artist_id, venue_id, venue_name, artist_name, artist_image_link, venue_image_link, start_time
               FROM shows WHERE artist_id = ? AND start_time <= ? ORDER BY start_time DESC`
	return r.queryShows(ctx, q, artistID, now)
}

// ListUpcomingByArtist returns the artist's shows with start_time strictly
// after now, soonest first.
func (r *ShowRepo) ListUpcomingByArtist(ctx context.Context, artistID uint64, now string) ([]Show, error) {
	const q = `SELECT id, artist_id, venue_id, venue_name, artist_name, artist_image_link, venue_image_link, start_time
               FROM shows WHERE artist_id = ? AND start_time > ? ORDER BY start_time ASC`
	return r.queryShows(ctx, q, artistID, now)
}

func (r *ShowRepo) queryShows(ctx context.Context, q string, args ...any) ([]Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]Show, 0)
	for rows.Next() {
		var s Show
		if err := rows.Scan(
			&s.ID, &s.ArtistID, &s.VenueID, &s.VenueName, &s.ArtistName,
			&s.ArtistImageLink, &s.VenueImageLink, &s.StartTime,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
