package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-artist-booking/internal/config"
	"github.com/iliyamo/venue-artist-booking/internal/handler"
	"github.com/iliyamo/venue-artist-booking/internal/middleware"
)

// RegisterRoutes wires the whole public surface onto the provided Echo
// instance. The rate limiter applies to every route; the response cache
// applies only to the browse group (GET listings and details), since the
// mutating routes must always hit the database. Both middlewares are
// pass-through when rdb is nil.
func RegisterRoutes(e *echo.Echo, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)

	browse := e.Group("", middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	browse.GET("/venues", v.ListVenues)
	browse.GET("/venues/:id", v.GetVenue)
	browse.GET("/artists", a.ListArtists)
	browse.GET("/artists/:id", a.GetArtist)
	browse.GET("/shows", s.ListShows)

	// Venue forms and mutations
	e.POST("/venues/search", v.SearchVenues)
	e.GET("/venues/create", v.NewVenueForm)
	e.POST("/venues/create", v.CreateVenue)
	e.GET("/venues/:id/edit", v.EditVenueForm)
	e.POST("/venues/:id/edit", v.EditVenue)
	e.DELETE("/venues/:id", v.DeleteVenue)

	// Artist forms and mutations (no delete route)
	e.POST("/artists/search", a.SearchArtists)
	e.GET("/artists/create", a.NewArtistForm)
	e.POST("/artists/create", a.CreateArtist)
	e.GET("/artists/:id/edit", a.EditArtistForm)
	e.POST("/artists/:id/edit", a.EditArtist)

	// Show forms and mutations (no edit or delete routes)
	e.GET("/shows/create", s.NewShowForm)
	e.POST("/shows/create", s.CreateShow)
}
