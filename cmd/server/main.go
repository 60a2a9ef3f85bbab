package main // Entry point package

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/rs/zerolog"       // structured logging

	"github.com/iliyamo/guestlist-rsvp/internal/config"
	"github.com/iliyamo/guestlist-rsvp/internal/database"
	"github.com/iliyamo/guestlist-rsvp/internal/handler"
	"github.com/iliyamo/guestlist-rsvp/internal/queue"
	"github.com/iliyamo/guestlist-rsvp/internal/report"
	"github.com/iliyamo/guestlist-rsvp/internal/repository"
	"github.com/iliyamo/guestlist-rsvp/internal/router"
	"github.com/iliyamo/guestlist-rsvp/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	// Redis is optional: a nil client disables the invite-page cache
	// and the RSVP rate limiter.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; invite cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	guests := repository.NewGuestRepo(db)

	reports := report.NewGenerator(report.NewHTTPFetcher())
	store := storage.NewStore(cfg.UploadDir, cfg.PublicBaseURL)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e, cfg.UploadDir)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, users, events, guests, reports), cfg.JWTSecret)
	router.RegisterHotel(e, handler.NewHotelHandler(cfg, events, guests, reports), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(events, guests, store), rdb)

	// Expired refresh tokens accumulate otherwise; sweep them hourly.
	go func() {
		for {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := tokens.PurgeExpired(ctx, time.Now().UTC()); err != nil {
				log.Warn().Err(err).Msg("refresh token purge failed")
			} else if n > 0 {
				log.Info().Int64("purged", n).Msg("expired refresh tokens removed")
			}
			cancel()
			time.Sleep(time.Hour)
		}
	}()

	// The activity consumer appends RSVP and import events to
	// logs/guestlist.log. It runs its own reconnect loop for the
	// lifetime of the process.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Error().Err(err).Msg("activity consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
