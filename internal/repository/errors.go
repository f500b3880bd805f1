// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors. For example, ErrVenueNotFound
// maps to an HTTP 404 while an unrecognised error maps to a 500.
package repository

import "errors"

// ErrVenueNotFound indicates that a venue lookup matched no row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound indicates that an artist lookup matched no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound indicates that a show lookup matched no row.
var ErrShowNotFound = errors.New("show not found")

// TimeLayout is the DB timestamp format used for show start times. Values
// are compared lexically, so the layout must stay zero-padded and UTC.
const TimeLayout = "2006-01-02 15:04:05"
