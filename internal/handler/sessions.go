package handler

import (
	"net/http"

	"museum-map-api/internal/models"
	"museum-map-api/internal/search"
	"museum-map-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionsHandler exposes the interactive search/filter/sort pipeline: each
// session owns one Directory whose state the client drives through these
// endpoints.
type SessionsHandler struct {
	sessions *service.Sessions
}

// NewSessionsHandler creates a new sessions handler
func NewSessionsHandler(sessions *service.Sessions) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// Register wires the session routes onto a router group.
func (h *SessionsHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/view", h.View)
	rg.PUT("/:id/query", h.SetQuery)
	rg.PUT("/:id/tab", h.SetTab)
	rg.PUT("/:id/order", h.SetOrder)
	rg.PUT("/:id/bounds", h.SetBounds)
	rg.PUT("/:id/hover", h.SetHover)
	rg.PUT("/:id/click", h.SetClick)
	rg.POST("/:id/clear", h.Clear)
}

// Create handles POST /sessions requests. While the snapshot is loading the
// session is still created, but no view is embedded.
func (h *SessionsHandler) Create(c *gin.Context) {
	id, dir := h.sessions.Create()
	resp := gin.H{"id": id}
	if dir.Err() == nil {
		resp["view"] = renderView(dir.View())
	}
	c.JSON(http.StatusCreated, resp)
}

// Delete handles DELETE /sessions/:id requests
func (h *SessionsHandler) Delete(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// View handles GET /sessions/:id/view requests
func (h *SessionsHandler) View(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	h.respondView(c, dir)
}

// SetQuery handles PUT /sessions/:id/query requests
func (h *SessionsHandler) SetQuery(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	var body struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dir.SetQuery(body.Query)
	h.respondView(c, dir)
}

// SetTab handles PUT /sessions/:id/tab requests
func (h *SessionsHandler) SetTab(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	var body struct {
		Tab string `json:"tab"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := dir.SetTab(service.Tab(body.Tab)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab must be 'museums' or 'events'"})
		return
	}
	h.respondView(c, dir)
}

// SetOrder handles PUT /sessions/:id/order requests
func (h *SessionsHandler) SetOrder(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	var body struct {
		Order string `json:"order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := dir.SetEventOrder(search.Order(body.Order)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be 'asc' or 'desc'"})
		return
	}
	h.respondView(c, dir)
}

// SetBounds handles PUT /sessions/:id/bounds requests, the map surface's
// bounds-changed notification.
func (h *SessionsHandler) SetBounds(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	var body models.Bounds
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dir.BoundsChanged(body)
	h.respondView(c, dir)
}

// SetHover handles PUT /sessions/:id/hover requests; a null id clears the
// hover state.
func (h *SessionsHandler) SetHover(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	var body struct {
		ID *int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dir.Hover(body.ID)
	h.respondView(c, dir)
}

// SetClick handles PUT /sessions/:id/click requests
func (h *SessionsHandler) SetClick(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	var body struct {
		ID *int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dir.Click(body.ID)
	h.respondView(c, dir)
}

// Clear handles POST /sessions/:id/clear requests
func (h *SessionsHandler) Clear(c *gin.Context) {
	dir, ok := h.lookup(c)
	if !ok {
		return
	}
	dir.Clear()
	h.respondView(c, dir)
}

// respondView writes the recomputed view, or the snapshot's load-state error
// while the data is not ready, mirroring the catalog endpoints.
func (h *SessionsHandler) respondView(c *gin.Context, dir *service.Directory) {
	if err := dir.Err(); err != nil {
		status, body := loadErrorResponse(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, renderView(dir.View()))
}

func (h *SessionsHandler) lookup(c *gin.Context) (*service.Directory, bool) {
	dir, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return dir, true
}

// viewResponse mirrors service.View with events decorated for display.
type viewResponse struct {
	Tab        service.Tab      `json:"tab"`
	Query      string           `json:"query"`
	Order      search.Order     `json:"order"`
	Museums    []models.Museum  `json:"museums"`
	Events     []eventView      `json:"events"`
	Markers    []service.Marker `json:"markers"`
	VisibleIDs []int64          `json:"visible_ids"`
	HoveredID  *int64           `json:"hovered_id"`
	ClickedID  *int64           `json:"clicked_id"`
	ResetView  bool             `json:"reset_view"`
}

func renderView(v service.View) viewResponse {
	events := make([]eventView, 0, len(v.Events))
	for _, e := range v.Events {
		events = append(events, newEventView(e))
	}
	return viewResponse{
		Tab:        v.Tab,
		Query:      v.Query,
		Order:      v.Order,
		Museums:    v.Museums,
		Events:     events,
		Markers:    v.Markers,
		VisibleIDs: v.VisibleIDs,
		HoveredID:  v.HoveredID,
		ClickedID:  v.ClickedID,
		ResetView:  v.ResetView,
	}
}
