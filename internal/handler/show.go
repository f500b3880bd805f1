// This file implements the show routes: the flattened listing and show
// creation. Shows have no edit or delete path; they disappear with their
// venue or artist through the cascade.
package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-artist-booking/internal/queue"
	"github.com/iliyamo/venue-artist-booking/internal/repository"
)

// ShowHandler serves the show routes. Publish, when non-nil, is invoked
// after a successful creation; a publish failure is logged and never fails
// the request.
type ShowHandler struct {
	ShowRepo *repository.ShowRepo
	Publish  func(ctx context.Context, ev queue.ShowListedEvent) error
}

type showListEntry struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ListShows handles GET /shows and returns every show flattened with its
// denormalized fields, start_time formatted as "YYYY-MM-DD HH:MM:SS".
func (h *ShowHandler) ListShows(c echo.Context) error {
	ctx := c.Request().Context()
	shows, err := h.ShowRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	data := make([]showListEntry, 0, len(shows))
	for _, s := range shows {
		data = append(data, showListEntry{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": data})
}

// NewShowForm handles GET /shows/create and names the fields the listing
// form submits.
func (h *ShowHandler) NewShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{"artist_id", "venue_id", "start_time"},
	})
}

// CreateShow handles POST /shows/create. Both ids must resolve to existing
// rows or the request is rejected with nothing persisted; the denormalized
// name and image columns are captured from the referenced records, not from
// the form.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	ctx := c.Request().Context()
	artistID, err := strconv.ParseUint(c.FormValue("artist_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid artist_id"})
	}
	venueID, err := strconv.ParseUint(c.FormValue("venue_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue_id"})
	}
	start, err := parseStartTime(c.FormValue("start_time"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	s := &repository.Show{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: start,
	}
	if err := h.ShowRepo.Create(ctx, s); err != nil {
		switch err {
		case repository.ErrArtistNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist not found"})
		case repository.ErrVenueNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred. Show could not be listed."})
		}
	}
	if h.Publish != nil {
		ev := queue.ShowListedEvent{
			ShowID:     s.ID,
			ArtistID:   s.ArtistID,
			ArtistName: s.ArtistName,
			VenueID:    s.VenueID,
			VenueName:  s.VenueName,
			StartTime:  s.StartTime,
			ListedAt:   nowString(),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("show %d: publish listed event failed: %v", s.ID, err)
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      s.ID,
		"message": "Show was successfully listed!",
	})
}

// parseStartTime accepts the DB timestamp format the forms submit and
// RFC 3339 as a fallback, normalising to UTC DB format.
func parseStartTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(repository.TimeLayout, raw); err == nil {
		return t.Format(repository.TimeLayout), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(repository.TimeLayout), nil
}
