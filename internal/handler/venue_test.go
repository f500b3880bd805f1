package handler_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-artist-booking/internal/repository"
)

func hopForm() url.Values {
	return url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae"},
		"image_link":          {"https://example.com/hop.jpg"},
		"facebook_link":       {"https://facebook.com/TheMusicalHop"},
		"website":             {"https://themusicalhop.com"},
		"seeking_description": {"Looking for local artists."},
	}
}

func TestVenueLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Create
	rec := app.do(t, http.MethodPost, "/venues/create", hopForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	require.Equal(t, "Venue The Musical Hop was successfully listed!", created["message"])
	id := uint64(created["id"].(float64))

	// Detail: same fields back, zero show counts
	rec = app.do(t, http.MethodGet, fmt.Sprintf("/venues/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	require.Equal(t, "The Musical Hop", detail["name"])
	require.Equal(t, "San Francisco", detail["city"])
	require.Equal(t, "CA", detail["state"])
	require.Equal(t, []any{"Jazz", "Reggae"}, detail["genres"])
	require.EqualValues(t, 0, detail["past_shows_count"])
	require.EqualValues(t, 0, detail["upcoming_shows_count"])
	require.Equal(t, []any{}, detail["past_shows"])
	require.Equal(t, []any{}, detail["upcoming_shows"])

	// Search hit ("hop" matches "Hop" case-insensitively)
	rec = app.do(t, http.MethodPost, "/venues/search", url.Values{"search_term": {"hop"}})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode(t, rec)
	require.EqualValues(t, 1, result["count"])
	data := result["data"].([]any)
	require.Equal(t, "The Musical Hop", data[0].(map[string]any)["name"])

	// Search miss
	rec = app.do(t, http.MethodPost, "/venues/search", url.Values{"search_term": {"xyz"}})
	result = decode(t, rec)
	require.EqualValues(t, 0, result["count"])
	require.Equal(t, []any{}, result["data"])

	// Delete: success message carries the captured name
	rec = app.do(t, http.MethodDelete, fmt.Sprintf("/venues/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Venue, The Musical Hop successfully deleted.", decode(t, rec)["message"])

	// Detail after delete is a 404, not a crash
	rec = app.do(t, http.MethodGet, fmt.Sprintf("/venues/%d", id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVenues_GroupsByArea(t *testing.T) {
	app := newTestApp(t)

	hopID := app.createVenue(t, hopForm())
	app.createVenue(t, url.Values{"name": {"Park Square Live Music & Coffee"}, "city": {"San Francisco"}, "state": {"CA"}})
	app.createVenue(t, url.Values{"name": {"The Dueling Pianos Bar"}, "city": {"New York"}, "state": {"NY"}})
	artistID := app.createArtist(t, url.Values{"name": {"Guns N Petals"}})

	// One upcoming show at the Hop
	start := time.Now().UTC().Add(time.Hour).Format(repository.TimeLayout)
	rec := app.do(t, http.MethodPost, "/shows/create", url.Values{
		"artist_id":  {fmt.Sprint(artistID)},
		"venue_id":   {fmt.Sprint(hopID)},
		"start_time": {start},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	areas := decode(t, rec)["areas"].([]any)
	require.Len(t, areas, 2)

	// New York sorts before San Francisco
	ny := areas[0].(map[string]any)
	require.Equal(t, "New York", ny["city"])
	require.Len(t, ny["venues"].([]any), 1)

	sf := areas[1].(map[string]any)
	require.Equal(t, "San Francisco", sf["city"])
	venues := sf["venues"].([]any)
	require.Len(t, venues, 2)
	for _, raw := range venues {
		v := raw.(map[string]any)
		if v["name"] == "The Musical Hop" {
			require.EqualValues(t, 1, v["num_upcoming_shows"])
		} else {
			require.EqualValues(t, 0, v["num_upcoming_shows"])
		}
	}
}

func TestCreateVenue_MissingName(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/venues/create", url.Values{"city": {"San Francisco"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "name is required", decode(t, rec)["error"])
}

func TestGetVenue_BadIDs(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/venues/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/venues/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditVenue_OverwritesAllFields(t *testing.T) {
	app := newTestApp(t)
	id := app.createVenue(t, hopForm())

	edit := url.Values{
		"name":       {"The Acoustic Hop"},
		"city":       {"Oakland"},
		"state":      {"CA"},
		"address":    {"12 Broadway"},
		"phone":      {"555-000-1111"},
		"genres":     {"Folk"},
		"image_link": {"https://example.com/acoustic.jpg"},
		// facebook_link, website, seeking_description deliberately absent:
		// a full-record edit overwrites them with empty strings.
	}
	rec := app.do(t, http.MethodPost, fmt.Sprintf("/venues/%d/edit", id), edit)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/venues/%d", id), nil)
	detail := decode(t, rec)
	require.Equal(t, "The Acoustic Hop", detail["name"])
	require.Equal(t, "Oakland", detail["city"])
	require.Equal(t, []any{"Folk"}, detail["genres"])
	require.Equal(t, "", detail["facebook_link"])
	require.Equal(t, "", detail["website"])
	require.Equal(t, "", detail["seeking_description"])
}

func TestEditVenue_NotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/venues/999/edit", url.Values{"name": {"Ghost"}})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVenue_NotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodDelete, "/venues/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewVenueForm_Choices(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/venues/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Contains(t, body["genres"], "Jazz")
	require.Contains(t, body["states"], "CA")
}
