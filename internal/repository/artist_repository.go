// This file defines the Artist model and its repository. Artists mirror the
// venue shape minus the street address; the public surface never exposes an
// artist delete, so the repository has no delete method.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Artist represents a row in the artists table.
type Artist struct {
	ID                 uint64   // artists.id
	Name               string   // artists.name
	City               string   // artists.city
	State              string   // artists.state
	Phone              string   // artists.phone
	Genres             []string // artists.genres (JSON array column)
	ImageLink          string   // artists.image_link
	Website            string   // artists.website
	FacebookLink       string   // artists.facebook_link
	SeekingDescription string   // artists.seeking_description
}

// ArtistRef is the id/name pair used by the artists listing.
type ArtistRef struct {
	ID   uint64
	Name string
}

// ArtistSummary is the search-result shape with the upcoming-show count.
type ArtistSummary struct {
	ID               uint64
	Name             string
	NumUpcomingShows int64
}

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a new artist and assigns the generated ID back to the struct.
func (r *ArtistRepo) Create(ctx context.Context, a *Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, website, facebook_link, seeking_description)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, genres,
		a.ImageLink, a.Website, a.FacebookLink, a.SeekingDescription,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an artist by its ID. It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*Artist, error) {
	const q = `SELECT id, name, city, state, phone, genres, image_link, website, facebook_link, seeking_description
               FROM artists WHERE id = ?`
	var a Artist
	var genres string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres,
		&a.ImageLink, &a.Website, &a.FacebookLink, &a.SeekingDescription,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	a.Genres = decodeGenres(genres)
	return &a, nil
}

// ListAll returns id/name pairs for every artist ordered by name. The
// listing page needs nothing else, so heavier columns stay unselected.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistRef, error) {
	const q = `SELECT id, name FROM artists ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]ArtistRef, 0)
	for rows.Next() {
		var a ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchByName performs a case-insensitive substring match on artist names
// and returns matches with the count of their shows starting after now.
func (r *ArtistRepo) SearchByName(ctx context.Context, term, now string) ([]ArtistSummary, error) {
	const q = `SELECT a.id, a.name, COUNT(s.id)
               FROM artists a
               LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time > ?
               WHERE LOWER(a.name) LIKE ?
               GROUP BY a.id, a.name
               ORDER BY a.name ASC`
	rows, err := r.db.QueryContext(ctx, q, now, "%"+strings.ToLower(term)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]ArtistSummary, 0)
	for rows.Next() {
		var s ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites every field of an existing artist (full-record edit,
// last write wins) and refreshes the denormalized artist_name and
// artist_image_link columns on dependent shows inside the same transaction.
// Returns ErrArtistNotFound when the row does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *Artist) (err error) {
	genres, err := encodeGenres(a.Genres)
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
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, a.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	const q = `UPDATE artists
               SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
                   image_link = ?, website = ?, facebook_link = ?, seeking_description = ?
               WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, genres,
		a.ImageLink, a.Website, a.FacebookLink, a.SeekingDescription, a.ID,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE shows SET artist_name = ?, artist_image_link = ? WHERE artist_id = ?`,
		a.Name, a.ImageLink, a.ID,
	); err != nil {
		return err
	}
	return nil
}
