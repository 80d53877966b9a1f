package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"museum-map-api/internal/models"
)

func coord(v float64) *float64 { return &v }

func testMuseums() []models.Museum {
	return []models.Museum{
		{ID: 1, Latitude: coord(43.06), Longitude: coord(141.35)}, // Sapporo
		{ID: 2, Latitude: coord(35.68), Longitude: coord(139.76)}, // Tokyo
		{ID: 3, Latitude: coord(34.69), Longitude: coord(135.50)}, // Osaka
		{ID: 4, Latitude: coord(26.21), Longitude: coord(127.68)}, // Naha
		{ID: 5},                        // no coordinates
		{ID: 6, Latitude: coord(35.0)}, // latitude only
	}
}

func TestSyncWorldBoundsIncludesAllWithCoordinates(t *testing.T) {
	var s Sync
	ids, changed := s.Update(testMuseums(), models.WorldBounds())

	assert.True(t, changed)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
}

func TestSyncUnchangedBoundsDoesNotNotify(t *testing.T) {
	var s Sync
	museums := testMuseums()
	bounds := models.Bounds{MinLat: 30, MinLon: 130, MaxLat: 40, MaxLon: 145}

	ids, changed := s.Update(museums, bounds)
	assert.True(t, changed)
	assert.Equal(t, []int64{2, 3}, ids)

	ids, changed = s.Update(museums, bounds)
	assert.False(t, changed)
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestSyncPanWithSameMembershipDoesNotNotify(t *testing.T) {
	var s Sync
	museums := testMuseums()

	_, changed := s.Update(museums, models.Bounds{MinLat: 30, MinLon: 130, MaxLat: 40, MaxLon: 145})
	assert.True(t, changed)

	// Nudged box, same pins inside.
	_, changed = s.Update(museums, models.Bounds{MinLat: 30.5, MinLon: 130.5, MaxLat: 40.5, MaxLon: 145.5})
	assert.False(t, changed)
}

func TestSyncListChangeUnderUnchangedBounds(t *testing.T) {
	var s Sync
	bounds := models.Bounds{MinLat: 30, MinLon: 130, MaxLat: 40, MaxLon: 145}

	_, changed := s.Update(nil, bounds)
	assert.True(t, changed)
	assert.Empty(t, s.Current())

	// Data load delivers records inside the unmoved viewport.
	ids, changed := s.Update(testMuseums(), bounds)
	assert.True(t, changed)
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestSyncFirstUpdateAlwaysNotifies(t *testing.T) {
	var s Sync
	_, changed := s.Update(nil, models.WorldBounds())
	assert.True(t, changed, "the initial computation must be reported even when empty")
}

func TestSyncOrderIndependentComparison(t *testing.T) {
	var s Sync
	a := []models.Museum{
		{ID: 1, Latitude: coord(35), Longitude: coord(139)},
		{ID: 2, Latitude: coord(36), Longitude: coord(140)},
	}
	b := []models.Museum{a[1], a[0]}
	bounds := models.WorldBounds()

	_, changed := s.Update(a, bounds)
	assert.True(t, changed)

	// Same membership in a different order: not a change.
	_, changed = s.Update(b, bounds)
	assert.False(t, changed)
}

func TestSyncReset(t *testing.T) {
	var s Sync
	museums := testMuseums()
	bounds := models.WorldBounds()

	s.Update(museums, bounds)
	s.Reset()

	_, changed := s.Update(museums, bounds)
	assert.True(t, changed)
}

func TestBoundsContains(t *testing.T) {
	b := models.Bounds{MinLat: 30, MinLon: 130, MaxLat: 40, MaxLon: 145}

	assert.True(t, b.Contains(35, 139))
	assert.True(t, b.Contains(30, 130), "edges are inside")
	assert.True(t, b.Contains(40, 145), "edges are inside")
	assert.False(t, b.Contains(29.9, 139))
	assert.False(t, b.Contains(35, 146))
}
