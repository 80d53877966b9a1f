package service

import (
	"fmt"
	"sync"

	"museum-map-api/internal/models"
	"museum-map-api/internal/search"
	"museum-map-api/internal/viewport"
)

// Tab selects which of the two lists drives the view.
type Tab string

const (
	TabMuseums Tab = "museums"
	TabEvents  Tab = "events"
)

// Valid reports whether the tab is one of the two known values.
func (t Tab) Valid() bool { return t == TabMuseums || t == TabEvents }

// Marker is what the map surface renders for one museum.
type Marker struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	EventCount int     `json:"event_count,omitempty"`
}

// View is the full recomputed output handed to the presentation layer after
// each input event.
type View struct {
	Tab        Tab             `json:"tab"`
	Query      string          `json:"query"`
	Order      search.Order    `json:"order"`
	Museums    []models.Museum `json:"museums"`
	Events     []models.Event  `json:"events"`
	Markers    []Marker        `json:"markers"`
	VisibleIDs []int64         `json:"visible_ids"`
	HoveredID  *int64          `json:"hovered_id"`
	ClickedID  *int64          `json:"clicked_id"`
	// ResetView asks the map surface to re-fit to the current marker set
	// (or to the default full-country view after a clear). Consumed on read.
	ResetView bool `json:"reset_view"`
}

// Directory is the orchestrator for one client: it owns the query text, the
// active tab, the visible-bounds set and the hover/click selection, and
// recomputes the displayed lists whenever any of them changes. It is the sole
// writer of that state; every input runs synchronously to completion under
// one lock, so recomputations never interleave.
type Directory struct {
	mu        sync.Mutex
	snap      *Snapshot
	tab       Tab
	query     search.Query
	order     search.Order
	bounds    *models.Bounds
	vp        viewport.Sync
	visible   []int64
	hovered   *int64
	clicked   *int64
	resetView bool
}

// NewDirectory creates an orchestrator over the shared snapshot, starting on
// the museums tab with an empty query and ascending event order.
func NewDirectory(snap *Snapshot) *Directory {
	return &Directory{snap: snap, tab: TabMuseums, order: search.OrderAsc}
}

// SetQuery updates the search text and recomputes. Typing a query switches
// the list from bounds-filtered to text-filtered; the two are never combined.
// The map is asked to re-fit when the new marker set has pins to fit (always,
// for an emptied query).
func (d *Directory) SetQuery(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.query = search.ParseQuery(raw)
	if d.query.IsEmpty() {
		d.resetView = true
		return
	}
	if len(d.markersLocked()) > 0 {
		d.resetView = true
	}
}

// SetTab switches the active tab. The viewport candidate set changes with
// the tab, so visibility is recomputed against the current bounds.
func (d *Directory) SetTab(tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("service: unknown tab %q", tab)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tab = tab
	d.recomputeVisibleLocked()
	d.resetView = true
	return nil
}

// SetEventOrder selects the event date sort direction.
func (d *Directory) SetEventOrder(order search.Order) error {
	if !order.Valid() {
		return fmt.Errorf("service: unknown sort order %q", order)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.order = order
	return nil
}

// BoundsChanged is the map surface's notification after a pan, zoom or
// re-fit. The visible set is replaced atomically; membership is compared
// order-independently so a pan that leaves the same pins visible changes
// nothing downstream.
func (d *Directory) BoundsChanged(b models.Bounds) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bounds = &b
	d.recomputeVisibleLocked()
}

// DataLoaded re-runs visibility against unchanged bounds; records delivered
// by the initial fetch may fall inside the current viewport.
func (d *Directory) DataLoaded() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recomputeVisibleLocked()
}

// Err surfaces the snapshot's load state so the serving layer can tell
// "still loading" and "failed" apart from a loaded-but-empty view.
func (d *Directory) Err() error {
	return d.snap.Err()
}

// Hover records which marker the pointer is over, or nil for none.
func (d *Directory) Hover(id *int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hovered = id
}

// Click records the last clicked marker, or nil for none.
func (d *Directory) Click(id *int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clicked = id
}

// Clear resets the query and any selection state and asks the map surface to
// re-center on the default full-country view.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = search.Query{}
	d.hovered = nil
	d.clicked = nil
	d.resetView = true
}

// View recomputes and returns the displayed lists for the current state.
// The reset-view flag is consumed by this read.
func (d *Directory) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := View{
		Tab:        d.tab,
		Query:      d.query.Raw(),
		Order:      d.order,
		Museums:    d.displayedMuseumsLocked(),
		Events:     search.EventsByDate(d.displayedEventsLocked(), d.order),
		Markers:    d.markersLocked(),
		VisibleIDs: append([]int64(nil), d.visible...),
		HoveredID:  d.hovered,
		ClickedID:  d.clicked,
		ResetView:  d.resetView,
	}
	d.resetView = false
	return v
}

// recomputeVisibleLocked runs viewport sync over the active tab's candidate
// set. Without reported bounds there is no visible set and the viewport does
// not filter.
func (d *Directory) recomputeVisibleLocked() {
	if d.bounds == nil {
		return
	}
	ids, changed := d.vp.Update(d.candidatesLocked(), *d.bounds)
	if changed {
		d.visible = ids
	}
}

// candidatesLocked is the coordinate-bearing record set the map renders and
// the viewport filters: all museums, or the unique event-linked museums.
func (d *Directory) candidatesLocked() []models.Museum {
	if d.tab == TabEvents {
		return uniqueEventMuseums(d.snap.Events())
	}
	return d.snap.Museums()
}

func (d *Directory) displayedMuseumsLocked() []models.Museum {
	museums := d.snap.Museums()
	if d.query.IsEmpty() {
		if d.bounds == nil {
			return museums
		}
		return filterByVisible(museums, d.visible)
	}
	matched := make([]models.Museum, 0, len(museums))
	for _, m := range museums {
		if d.query.Matches(m.SearchFields()) {
			matched = append(matched, m)
		}
	}
	return matched
}

func (d *Directory) displayedEventsLocked() []models.Event {
	events := d.snap.Events()
	if d.query.IsEmpty() {
		if d.bounds == nil {
			return events
		}
		visible := make(map[int64]struct{}, len(d.visible))
		for _, id := range d.visible {
			visible[id] = struct{}{}
		}
		shown := make([]models.Event, 0, len(events))
		for _, e := range events {
			id, ok := e.MuseumID()
			if !ok {
				continue
			}
			if _, in := visible[id]; in {
				shown = append(shown, e)
			}
		}
		return shown
	}
	matched := make([]models.Event, 0, len(events))
	for _, e := range events {
		if d.query.Matches(e.SearchFields()) {
			matched = append(matched, e)
		}
	}
	return matched
}

// markersLocked builds the marker set for the map surface: the full candidate
// set when the query is empty, the matched records when it is active.
func (d *Directory) markersLocked() []Marker {
	if d.tab == TabEvents {
		// Markers and their counts come from the same event set: the full
		// set when the query is empty, the matched set when it is active.
		// The viewport never thins the map's pins.
		events := d.displayedEventsLocked()
		if d.query.IsEmpty() {
			events = d.snap.Events()
		}
		counts := make(map[int64]int, len(events))
		for _, e := range events {
			if id, ok := e.MuseumID(); ok {
				counts[id]++
			}
		}
		return buildMarkers(uniqueEventMuseums(events), counts)
	}

	if d.query.IsEmpty() {
		return buildMarkers(d.snap.Museums(), nil)
	}
	return buildMarkers(d.displayedMuseumsLocked(), nil)
}

func buildMarkers(museums []models.Museum, counts map[int64]int) []Marker {
	markers := make([]Marker, 0, len(museums))
	for _, m := range museums {
		if !m.HasCoordinates() {
			continue
		}
		markers = append(markers, Marker{
			ID:         m.ID,
			Name:       m.Name,
			Address:    m.Address,
			Latitude:   *m.Latitude,
			Longitude:  *m.Longitude,
			EventCount: counts[m.ID],
		})
	}
	return markers
}

func filterByVisible(museums []models.Museum, visible []int64) []models.Museum {
	set := make(map[int64]struct{}, len(visible))
	for _, id := range visible {
		set[id] = struct{}{}
	}
	shown := make([]models.Museum, 0, len(visible))
	for _, m := range museums {
		if _, ok := set[m.ID]; ok {
			shown = append(shown, m)
		}
	}
	return shown
}

// uniqueEventMuseums returns each event's museum once, first occurrence wins.
func uniqueEventMuseums(events []models.Event) []models.Museum {
	seen := make(map[int64]struct{}, len(events))
	museums := make([]models.Museum, 0, len(events))
	for _, e := range events {
		if e.Museum == nil {
			continue
		}
		if _, ok := seen[e.Museum.ID]; ok {
			continue
		}
		seen[e.Museum.ID] = struct{}{}
		museums = append(museums, *e.Museum)
	}
	return museums
}
