package main

import (
	"context"
	"log"

	"github.com/avelichko/gallery-market/internal/config"
	"github.com/avelichko/gallery-market/internal/db"
	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/server"
	"github.com/avelichko/gallery-market/internal/sweep"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Artist{},
		&model.Category{},
		&model.Artwork{},
		&model.Order{},
		&model.Payment{},
		&model.Review{},
		&model.Verification{},
		&model.Favorite{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	srv := server.New(conn, cfg)

	sweeper := sweep.New(srv.Artworks, srv.Cart, srv.Verifications, sweep.Config{
		Interval:         cfg.SweepEvery(),
		ArchiveAfterDays: cfg.ArchiveAfterDays,
		CartExpiryDays:   cfg.CartExpiryDays,
		AgingNoticeDays:  cfg.AgingNoticeDays,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
