// This file implements the venue routes: listing grouped by area,
// case-insensitive name search, detail with the past/upcoming show split,
// create, full-record edit and delete.
package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-artist-booking/internal/repository"
)

// VenueHandler aggregates the repositories needed by the venue routes.
type VenueHandler struct {
	VenueRepo *repository.VenueRepo
	ShowRepo  *repository.ShowRepo
}

// venueArea groups the venues of one (city, state) pair.
type venueArea struct {
	City   string           `json:"city"`
	State  string           `json:"state"`
	Venues []venueListEntry `json:"venues"`
}

type venueListEntry struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int64  `json:"num_upcoming_shows"`
}

// venueShowEntry is one row of a venue's past or upcoming show list. The
// counterpart artist fields come from the denormalized show columns.
type venueShowEntry struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type venueDetail struct {
	ID                 uint64           `json:"id"`
	Name               string           `json:"name"`
	Genres             []string         `json:"genres"`
	Address            string           `json:"address"`
	City               string           `json:"city"`
	State              string           `json:"state"`
	Phone              string           `json:"phone"`
	Website            string           `json:"website"`
	FacebookLink       string           `json:"facebook_link"`
	SeekingDescription string           `json:"seeking_description"`
	ImageLink          string           `json:"image_link"`
	PastShows          []venueShowEntry `json:"past_shows"`
	UpcomingShows      []venueShowEntry `json:"upcoming_shows"`
	PastShowsCount     int              `json:"past_shows_count"`
	UpcomingShowsCount int              `json:"upcoming_shows_count"`
}

// ListVenues handles GET /venues. Venues arrive ordered by city and state,
// so one sequential pass builds the area groups. Each venue carries the
// count of its shows starting after now.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	sums, err := h.VenueRepo.ListWithUpcomingCounts(ctx, nowString())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	areas := make([]venueArea, 0)
	for _, s := range sums {
		entry := venueListEntry{ID: s.ID, Name: s.Name, NumUpcomingShows: s.NumUpcomingShows}
		n := len(areas)
		if n > 0 && areas[n-1].City == s.City && areas[n-1].State == s.State {
			areas[n-1].Venues = append(areas[n-1].Venues, entry)
			continue
		}
		areas = append(areas, venueArea{City: s.City, State: s.State, Venues: []venueListEntry{entry}})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues handles POST /venues/search. The search_term form field
// (empty when absent) is matched case-insensitively as a substring of venue
// names; "hop" finds "The Musical Hop".
func (h *VenueHandler) SearchVenues(c echo.Context) error {
	ctx := c.Request().Context()
	term := c.FormValue("search_term")
	sums, err := h.VenueRepo.SearchByName(ctx, term, nowString())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	data := make([]venueListEntry, 0, len(sums))
	for _, s := range sums {
		data = append(data, venueListEntry{ID: s.ID, Name: s.Name, NumUpcomingShows: s.NumUpcomingShows})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(data),
		"data":        data,
		"search_term": term,
	})
}

// GetVenue handles GET /venues/:id. Shows referencing the venue are split
// into past and upcoming lists by comparing start_time to now at read time.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := nowString()
	past, err := h.ShowRepo.ListPastByVenue(ctx, id, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	upcoming, err := h.ShowRepo.ListUpcomingByVenue(ctx, id, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	detail := venueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             v.Genres,
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          venueShowEntries(past),
		UpcomingShows:      venueShowEntries(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	return c.JSON(http.StatusOK, detail)
}

func venueShowEntries(shows []repository.Show) []venueShowEntry {
	out := make([]venueShowEntry, 0, len(shows))
	for _, s := range shows {
		out = append(out, venueShowEntry{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		})
	}
	return out
}

// NewVenueForm handles GET /venues/create and returns the choice lists the
// listing form offers.
func (h *VenueHandler) NewVenueForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"genres": genreChoices, "states": stateChoices})
}

// CreateVenue handles POST /venues/create. The venue is built from the form
// fields (genres is multi-value); a missing name is rejected before the
// persistence layer is reached.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	ctx := c.Request().Context()
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	v := &repository.Venue{
		Name:               name,
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Address:            c.FormValue("address"),
		Phone:              c.FormValue("phone"),
		Genres:             formGenres(c),
		ImageLink:          c.FormValue("image_link"),
		FacebookLink:       c.FormValue("facebook_link"),
		Website:            c.FormValue("website"),
		SeekingDescription: c.FormValue("seeking_description"),
	}
	if err := h.VenueRepo.Create(ctx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Venue %s could not be listed.", name),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      v.ID,
		"message": fmt.Sprintf("Venue %s was successfully listed!", name),
	})
}

// EditVenueForm handles GET /venues/:id/edit and returns the record for the
// edit form.
func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue": venueDetail{
			ID:                 v.ID,
			Name:               v.Name,
			Genres:             v.Genres,
			Address:            v.Address,
			City:               v.City,
			State:              v.State,
			Phone:              v.Phone,
			Website:            v.Website,
			FacebookLink:       v.FacebookLink,
			SeekingDescription: v.SeekingDescription,
			ImageLink:          v.ImageLink,
			PastShows:          []venueShowEntry{},
			UpcomingShows:      []venueShowEntry{},
		},
		"genres": genreChoices,
		"states": stateChoices,
	})
}

// EditVenue handles POST /venues/:id/edit. Every field is overwritten from
// the form unconditionally; a concurrent edit is resolved last-write-wins.
func (h *VenueHandler) EditVenue(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	v := &repository.Venue{
		ID:                 id,
		Name:               name,
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Address:            c.FormValue("address"),
		Phone:              c.FormValue("phone"),
		Genres:             formGenres(c),
		ImageLink:          c.FormValue("image_link"),
		FacebookLink:       c.FormValue("facebook_link"),
		Website:            c.FormValue("website"),
		SeekingDescription: c.FormValue("seeking_description"),
	}
	if err := h.VenueRepo.Update(ctx, v); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return h.GetVenue(c)
}

// DeleteVenue handles DELETE /venues/:id. Dependent shows are removed with
// the venue; the success message carries the name captured before the
// delete.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	name, err := h.VenueRepo.DeleteByID(ctx, id)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Venue, %s successfully deleted.", name),
	})
}
