// Command seed clears the measurement store and fills it with 31 daily
// records, one per day ending today, for local development.
package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"envmetrics/internal/adapter/postgres"
	"envmetrics/internal/config"
	"envmetrics/internal/domain"
	"envmetrics/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cfg, "seed")

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required for seeding")
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("db open", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.DeleteAll(ctx); err != nil {
		log.Error("clear measurements", "err", err)
		os.Exit(1)
	}
	log.Info("cleared existing measurements")

	now := time.Now().UTC()
	count := 0
	for i := 30; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

		m := domain.Measurement{
			Timestamp: day,
			Field1:    float64(rand.Intn(100) + 50),
			Field2:    float64(rand.Intn(200) + 100),
			Field3:    float64(rand.Intn(50) + 10),
		}
		if _, err := db.Append(ctx, m); err != nil {
			log.Error("insert", "err", err)
			os.Exit(1)
		}
		count++
	}

	log.Info("seeded measurements", "count", count)
}
