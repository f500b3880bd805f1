// This file implements the artist routes: id/name listing, case-insensitive
// name search, detail with the past/upcoming show split, create and
// full-record edit. Artists expose no delete route.
package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-artist-booking/internal/repository"
)

// ArtistHandler aggregates the repositories needed by the artist routes.
type ArtistHandler struct {
	ArtistRepo *repository.ArtistRepo
	ShowRepo   *repository.ShowRepo
}

type artistListEntry struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type artistSearchEntry struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int64  `json:"num_upcoming_shows"`
}

// artistShowEntry is one row of an artist's past or upcoming show list. The
// counterpart venue fields come from the denormalized show columns.
type artistShowEntry struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

type artistDetail struct {
	ID                 uint64            `json:"id"`
	Name               string            `json:"name"`
	Genres             []string          `json:"genres"`
	City               string            `json:"city"`
	State              string            `json:"state"`
	Phone              string            `json:"phone"`
	Website            string            `json:"website"`
	FacebookLink       string            `json:"facebook_link"`
	SeekingDescription string            `json:"seeking_description"`
	ImageLink          string            `json:"image_link"`
	PastShows          []artistShowEntry `json:"past_shows"`
	UpcomingShows      []artistShowEntry `json:"upcoming_shows"`
	PastShowsCount     int               `json:"past_shows_count"`
	UpcomingShowsCount int               `json:"upcoming_shows_count"`
}

// ListArtists handles GET /artists and returns id/name pairs only.
func (h *ArtistHandler) ListArtists(c echo.Context) error {
	ctx := c.Request().Context()
	refs, err := h.ArtistRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	data := make([]artistListEntry, 0, len(refs))
	for _, a := range refs {
		data = append(data, artistListEntry{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": data})
}

// SearchArtists handles POST /artists/search with the same contract as the
// venue search: case-insensitive substring match on the name field.
func (h *ArtistHandler) SearchArtists(c echo.Context) error {
	ctx := c.Request().Context()
	term := c.FormValue("search_term")
	sums, err := h.ArtistRepo.SearchByName(ctx, term, nowString())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	data := make([]artistSearchEntry, 0, len(sums))
	for _, s := range sums {
		data = append(data, artistSearchEntry{ID: s.ID, Name: s.Name, NumUpcomingShows: s.NumUpcomingShows})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(data),
		"data":        data,
		"search_term": term,
	})
}

// GetArtist handles GET /artists/:id. Shows referencing the artist are
// split into past and upcoming lists against the current time.
func (h *ArtistHandler) GetArtist(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := nowString()
	past, err := h.ShowRepo.ListPastByArtist(ctx, id, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	upcoming, err := h.ShowRepo.ListUpcomingByArtist(ctx, id, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	detail := artistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             a.Genres,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		PastShows:          artistShowEntries(past),
		UpcomingShows:      artistShowEntries(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	return c.JSON(http.StatusOK, detail)
}

func artistShowEntries(shows []repository.Show) []artistShowEntry {
	out := make([]artistShowEntry, 0, len(shows))
	for _, s := range shows {
		out = append(out, artistShowEntry{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      s.StartTime,
		})
	}
	return out
}

// NewArtistForm handles GET /artists/create and returns the choice lists
// the listing form offers.
func (h *ArtistHandler) NewArtistForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"genres": genreChoices, "states": stateChoices})
}

// CreateArtist handles POST /artists/create.
func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	ctx := c.Request().Context()
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	a := &repository.Artist{
		Name:               name,
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Phone:              c.FormValue("phone"),
		Genres:             formGenres(c),
		ImageLink:          c.FormValue("image_link"),
		Website:            c.FormValue("website"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingDescription: c.FormValue("seeking_description"),
	}
	if err := h.ArtistRepo.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Artist %s could not be listed.", name),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      a.ID,
		"message": fmt.Sprintf("Artist %s was successfully listed!", name),
	})
}

// EditArtistForm handles GET /artists/:id/edit and returns the record for
// the edit form.
func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"artist": artistDetail{
			ID:                 a.ID,
			Name:               a.Name,
			Genres:             a.Genres,
			City:               a.City,
			State:              a.State,
			Phone:              a.Phone,
			Website:            a.Website,
			FacebookLink:       a.FacebookLink,
			SeekingDescription: a.SeekingDescription,
			ImageLink:          a.ImageLink,
			PastShows:          []artistShowEntry{},
			UpcomingShows:      []artistShowEntry{},
		},
		"genres": genreChoices,
		"states": stateChoices,
	})
}

// EditArtist handles POST /artists/:id/edit. Every field is overwritten
// from the form unconditionally; a concurrent edit is resolved
// last-write-wins.
func (h *ArtistHandler) EditArtist(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	a := &repository.Artist{
		ID:                 id,
		Name:               name,
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Phone:              c.FormValue("phone"),
		Genres:             formGenres(c),
		ImageLink:          c.FormValue("image_link"),
		Website:            c.FormValue("website"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingDescription: c.FormValue("seeking_description"),
	}
	if err := h.ArtistRepo.Update(ctx, a); err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return h.GetArtist(c)
}
