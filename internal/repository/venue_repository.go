// Package repository contains data access logic for the booking directory.
// This file defines the Venue model and its repository. A Venue is a place
// that hosts shows; deleting one removes its dependent shows as well.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparison
	"strings"      // strings lower-cases search terms
)

// Venue represents a row in the venues table. Genres hold the submitted
// order; all other fields are plain strings matching the listing form.
type Venue struct {
	ID                 uint64   // venues.id
	Name               string   // venues.name
	City               string   // venues.city
	State              string   // venues.state
	Address            string   // venues.address
	Phone              string   // venues.phone
	Genres             []string // venues.genres (JSON array column)
	ImageLink          string   // venues.image_link
	FacebookLink       string   // venues.facebook_link
	Website            string   // venues.website
	SeekingDescription string   // venues.seeking_description
}

// VenueSummary is the reduced shape used by listing and search responses.
// NumUpcomingShows counts shows at the venue starting strictly after the
// reference time supplied by the caller.
type VenueSummary struct {
	ID               uint64
	Name             string
	City             string
	State            string
	NumUpcomingShows int64
}

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue and assigns the generated ID back to the
// struct. Genres are encoded as a JSON array before storage.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO venues (name, city, state, address, phone, genres, image_link, facebook_link, website, seeking_description)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, genres,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingDescription,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID retrieves a venue by its ID. It returns ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	const q = `SELECT id, name, city, state, address, phone, genres, image_link, facebook_link, website, seeking_description
               FROM venues WHERE id = ?`
	var v Venue
	var genres string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &genres,
		&v.ImageLink, &v.FacebookLink, &v.Website, &v.SeekingDescription,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	v.Genres = decodeGenres(genres)
	return &v, nil
}

// ListWithUpcomingCounts returns every venue with the number of its shows
// starting after now ("2006-01-02 15:04:05" UTC). Results are ordered by
// city, state and name so callers can group areas in one pass.
func (r *VenueRepo) ListWithUpcomingCounts(ctx context.Context, now string) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
               FROM venues v
               LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
               GROUP BY v.id, v.name, v.city, v.state
               ORDER BY v.city ASC, v.state ASC, v.name ASC`
	return r.querySummaries(ctx, q, now)
}

// SearchByName performs a case-insensitive substring match on venue names
// and returns matches with their upcoming-show counts. An empty term
// matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term, now string) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
               FROM venues v
               LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
               WHERE LOWER(v.name) LIKE ?
               GROUP BY v.id, v.name, v.city, v.state
               ORDER BY v.name ASC`
	return r.querySummaries(ctx, q, now, "%"+strings.ToLower(term)+"%")
}

func (r *VenueRepo) querySummaries(ctx context.Context, q string, args ...any) ([]VenueSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]VenueSummary, 0)
	for rows.Next() {
		var s VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites every field of an existing venue from the given struct
// (full-record edit, last write wins) and refreshes the denormalized
// venue_name and venue_image_link columns on dependent shows inside the
// same transaction. Returns ErrVenueNotFound when the row does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) (err error) {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
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
	// Existence check first: an UPDATE with identical values reports zero
	// affected rows, so RowsAffected cannot distinguish not-found.
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, v.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	const q = `UPDATE venues
               SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
                   image_link = ?, facebook_link = ?, website = ?, seeking_description = ?
               WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, genres,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingDescription, v.ID,
	); err != nil {
		return err
	}
	// Keep the flattened show rows in sync with the edited venue.
	if _, err = tx.ExecContext(ctx,
		`UPDATE shows SET venue_name = ?, venue_image_link = ? WHERE venue_id = ?`,
		v.Name, v.ImageLink, v.ID,
	); err != nil {
		return err
	}
	return nil
}

// DeleteByID removes a venue and all shows referencing it. The deleted
// venue's name is captured before the delete so callers can report it.
// Returns ErrVenueNotFound when the row does not exist.
func (r *VenueRepo) DeleteByID(ctx context.Context, id uint64) (name string, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	err = tx.QueryRowContext(ctx, `SELECT name FROM venues WHERE id = ?`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrVenueNotFound
		}
		return "", err
	}
	// The FK cascade covers this, but deleting explicitly keeps the
	// behavior identical on engines where the pragma is off.
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return "", err
	}
	return name, nil
}
