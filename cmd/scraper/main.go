package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"museum-map-api/internal/config"
	"museum-map-api/internal/models"
	"museum-map-api/internal/repository"
	"museum-map-api/internal/scraper"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// dryRunStore prints events instead of writing them.
type dryRunStore struct{}

func (dryRunStore) UpsertEvent(_ context.Context, museumID int64, e models.Event) error {
	fmt.Printf("museum %d: %s (%s) %s\n", museumID, e.Title, e.DateLabel(), e.Description)
	return nil
}

func main() {
	museumID := flag.Int64("museum-id", 0, "ID of the museum the scraped events belong to")
	url := flag.String("url", "", "Event listing page URL (defaults to SCRAPE_URL)")
	dryRun := flag.Bool("dry-run", false, "Parse and print events without writing to the database")
	flag.Parse()

	if *museumID == 0 {
		fmt.Println("Error: --museum-id flag is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *url == "" {
		*url = cfg.ScrapeURL
	}

	ctx := context.Background()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	s := scraper.NewScraper(nil, clockwork.NewRealClock(), logger)

	if *dryRun {
		written, err := s.Run(ctx, *url, *museumID, dryRunStore{})
		if err != nil {
			fmt.Printf("Error scraping events: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Parsed %d events (dry run)\n", written)
		return
	}

	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)

	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Printf("Error creating tables: %v\n", err)
		os.Exit(1)
	}

	written, err := s.Run(ctx, *url, *museumID, repo)
	if err != nil {
		fmt.Printf("Error scraping events: %v\n", err)
		os.Exit(1)
	}

	count, err := repo.CountEvents(ctx, *museumID)
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully upserted %d events (%d stored for museum %d)\n", written, count, *museumID)
}
