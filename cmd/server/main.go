package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-artist-booking/internal/config"
	"github.com/iliyamo/venue-artist-booking/internal/database"
	"github.com/iliyamo/venue-artist-booking/internal/handler"
	"github.com/iliyamo/venue-artist-booking/internal/queue"
	"github.com/iliyamo/venue-artist-booking/internal/repository"
	"github.com/iliyamo/venue-artist-booking/internal/router"
	queuepublisher "github.com/iliyamo/venue-artist-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	venues := &handler.VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo}
	artists := &handler.ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo}
	shows := &handler.ShowHandler{ShowRepo: showRepo, Publish: queuepublisher.PublishShowListed}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; running without cache and rate limiting")
	}

	// Background consumer appends listed shows to logs/listings.log.
	go func() {
		if err := queue.StartListingConsumer(); err != nil {
			log.Printf("listing consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, venues, artists, shows, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
