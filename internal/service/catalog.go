package service

import (
	"museum-map-api/internal/models"
	"museum-map-api/internal/search"
)

// Catalog answers the stateless listing queries over the loaded snapshot.
type Catalog struct {
	snap *Snapshot
}

// NewCatalog creates a catalog over the given snapshot.
func NewCatalog(snap *Snapshot) *Catalog {
	return &Catalog{snap: snap}
}

// SearchMuseums returns the prefecture-sorted museums matching the query.
// An empty query returns everything.
func (c *Catalog) SearchMuseums(raw string) ([]models.Museum, error) {
	if err := c.snap.Err(); err != nil {
		return nil, err
	}
	museums := c.snap.Museums()
	q := search.ParseQuery(raw)
	if q.IsEmpty() {
		return museums, nil
	}
	matched := make([]models.Museum, 0, len(museums))
	for _, m := range museums {
		if q.Matches(m.SearchFields()) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// SearchEvents returns the events matching the query, ordered by start date.
func (c *Catalog) SearchEvents(raw string, order search.Order) ([]models.Event, error) {
	if err := c.snap.Err(); err != nil {
		return nil, err
	}
	events := c.snap.Events()
	q := search.ParseQuery(raw)
	if !q.IsEmpty() {
		matched := make([]models.Event, 0, len(events))
		for _, e := range events {
			if q.Matches(e.SearchFields()) {
				matched = append(matched, e)
			}
		}
		events = matched
	}
	return search.EventsByDate(events, order), nil
}
