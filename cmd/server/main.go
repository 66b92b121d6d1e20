package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eventhive/event-booking-api/internal/config"
	"github.com/eventhive/event-booking-api/internal/database"
	"github.com/eventhive/event-booking-api/internal/handler"
	"github.com/eventhive/event-booking-api/internal/queue"
	"github.com/eventhive/event-booking-api/internal/repository"
	"github.com/eventhive/event-booking-api/internal/router"
	"github.com/eventhive/event-booking-api/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Open(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil when Redis is absent

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	wishlistRepo := repository.NewWishlistRepo(db)

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = service.NewQueuePublisher(cfg.AMQPURL)
		go queue.StartBookingConsumer(cfg.AMQPURL)
	}
	bookingSvc := service.NewBookingService(eventRepo, bookingRepo, publisher)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Public:   handler.NewPublicEventHandler(eventRepo),
		Event:    handler.NewOrganizerEventHandler(eventRepo, userRepo),
		Admin:    handler.NewAdminHandler(eventRepo, userRepo, bookingRepo, tokenRepo),
		Booking:  handler.NewBookingHandler(bookingSvc, bookingRepo, eventRepo),
		Wishlist: handler.NewWishlistHandler(wishlistRepo, eventRepo),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	router.Register(e, h, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
