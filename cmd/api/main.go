package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/you/tutor-marketplace/internal/account"
	"github.com/you/tutor-marketplace/internal/booking"
	"github.com/you/tutor-marketplace/internal/httpapi"
	"github.com/you/tutor-marketplace/internal/listing"
	"github.com/you/tutor-marketplace/internal/review"
	"github.com/you/tutor-marketplace/pkg/config"
	"github.com/you/tutor-marketplace/pkg/db"
	"github.com/you/tutor-marketplace/pkg/mq"
	"github.com/you/tutor-marketplace/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()

	cfg := must(config.Load())

	shutdown := obs.InitTracer("tutor-api")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGDSN)

	accountRepo := account.NewRepo(gdb)
	listingRepo := listing.NewRepo(gdb)
	bookingRepo := booking.NewRepo(gdb)
	reviewRepo := review.NewRepo(gdb)
	must(0, accountRepo.Migrate())
	must(0, listingRepo.Migrate())
	must(0, bookingRepo.Migrate())
	must(0, reviewRepo.Migrate())

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange))
	defer pub.Close()

	listings := listing.NewService(listingRepo)
	bookings := booking.NewService(bookingRepo, listings, pub)
	accounts := account.NewService(accountRepo, pub, time.Duration(cfg.JWTExpireHr)*time.Hour)
	reviews := review.NewService(reviewRepo, bookings)

	r := httpapi.NewRouter(httpapi.Services{
		Accounts: accounts,
		Listings: listings,
		Bookings: bookings,
		Reviews:  reviews,
	})

	log.Println("[api] listening on", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
