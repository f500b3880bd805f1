// Package handler exposes the HTTP handlers for the booking directory.
// This file holds helpers and the form choice lists shared by the venue and
// artist create/edit descriptors.
package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-artist-booking/internal/repository"
)

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// nowString returns the current wall-clock time in the DB timestamp format.
// Past/upcoming classification is computed against this value at read time
// and never stored.
func nowString() string {
	return time.Now().UTC().Format(repository.TimeLayout)
}

// formGenres returns the multi-value "genres" form field in submitted order.
func formGenres(c echo.Context) []string {
	params, err := c.FormParams()
	if err != nil {
		return []string{}
	}
	genres := params["genres"]
	if genres == nil {
		genres = []string{}
	}
	return genres
}

// genreChoices lists the genres accepted by the listing forms.
var genreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}

// stateChoices lists the US state codes accepted by the listing forms.
var stateChoices = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}
