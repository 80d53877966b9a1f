package handler

import (
	"net/http"

	"museum-map-api/internal/models"
	"museum-map-api/internal/search"

	"github.com/gin-gonic/gin"
)

// unknownMuseumName is shown when an event's owning museum row no longer
// exists.
const unknownMuseumName = "施設不明"

// EventsHandler handles event listing requests
type EventsHandler struct {
	service EventSearcher
}

// EventSearcher interface for dependency injection
type EventSearcher interface {
	SearchEvents(query string, order search.Order) ([]models.Event, error)
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(svc EventSearcher) *EventsHandler {
	return &EventsHandler{service: svc}
}

// eventView decorates an event with its rendered date label and a museum
// name that tolerates the museum being unknown.
type eventView struct {
	models.Event
	DateLabel  string `json:"date_label"`
	MuseumName string `json:"museum_name"`
}

func newEventView(e models.Event) eventView {
	name := unknownMuseumName
	if e.Museum != nil {
		name = e.Museum.Name
	}
	return eventView{Event: e, DateLabel: e.DateLabel(), MuseumName: name}
}

// List handles GET /events requests. order is "asc" (default) or "desc".
func (h *EventsHandler) List(c *gin.Context) {
	order := search.Order(c.DefaultQuery("order", string(search.OrderAsc)))
	if !order.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be 'asc' or 'desc'"})
		return
	}

	events, err := h.service.SearchEvents(c.Query("q"), order)
	if err != nil {
		status, body := loadErrorResponse(err)
		c.JSON(status, body)
		return
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, newEventView(e))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(views),
		"events": views,
	})
}
