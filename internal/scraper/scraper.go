package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"museum-map-api/internal/models"
)

// Upserter persists scraped events, keyed by (museum id, title).
type Upserter interface {
	UpsertEvent(ctx context.Context, museumID int64, event models.Event) error
}

// Scraper fetches a museum's event listing page and writes its rows through
// an Upserter.
type Scraper struct {
	client *http.Client
	clock  clockwork.Clock
	log    zerolog.Logger
}

// NewScraper builds a Scraper. A nil client falls back to
// http.DefaultClient.
func NewScraper(client *http.Client, clock clockwork.Clock, log zerolog.Logger) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Scraper{client: client, clock: clock, log: log}
}

// Fetch downloads and parses the listing page at url.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("scraper: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scraper: fetch %s: status %d", url, resp.StatusCode)
	}
	return ParseEvents(resp.Body, url, s.clock)
}

// Run fetches the page and upserts every parsed event for museumID. A row
// that fails to upsert is logged and skipped; Run only fails when the page
// itself cannot be fetched or parsed. It returns the number of rows written.
func (s *Scraper) Run(ctx context.Context, url string, museumID int64, store Upserter) (int, error) {
	events, err := s.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("events", len(events)).Str("url", url).Msg("parsed event listing")

	written := 0
	for _, e := range events {
		if err := store.UpsertEvent(ctx, museumID, e); err != nil {
			s.log.Error().Err(err).Str("title", e.Title).Msg("upsert event failed")
			continue
		}
		written++
	}
	return written, nil
}
