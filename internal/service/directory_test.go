package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"museum-map-api/internal/models"
	"museum-map-api/internal/search"
)

// kansaiBounds covers museum 1 (伊丹) only.
var kansaiBounds = models.Bounds{MinLat: 34, MinLon: 134, MaxLat: 36, MaxLon: 137}

// eastBounds covers museums 2 (札幌) and 3 (多摩).
var eastBounds = models.Bounds{MinLat: 35, MinLon: 138, MaxLat: 44, MaxLon: 142}

func museumIDs(museums []models.Museum) []int64 {
	ids := make([]int64, 0, len(museums))
	for _, m := range museums {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestDirectoryInitialViewShowsEverything(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	v := dir.View()

	assert.Equal(t, TabMuseums, v.Tab)
	assert.Equal(t, "", v.Query)
	// No bounds reported yet: the viewport does not filter.
	assert.Equal(t, []int64{2, 3, 1}, museumIDs(v.Museums))
	assert.Len(t, v.Markers, 3)
}

func TestDirectoryBoundsFilterWhenQueryEmpty(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	dir.BoundsChanged(eastBounds)
	v := dir.View()

	assert.Equal(t, []int64{2, 3}, museumIDs(v.Museums))
	assert.ElementsMatch(t, []int64{2, 3}, v.VisibleIDs)
	// Markers still show the full candidate set; the viewport filters the
	// list, not the map.
	assert.Len(t, v.Markers, 3)
}

func TestDirectoryQueryIgnoresBounds(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	dir.BoundsChanged(eastBounds) // 伊丹 is outside
	dir.SetQuery("伊丹")
	v := dir.View()

	// An active query searches the full candidate set; the map's framing no
	// longer restricts the list.
	assert.Equal(t, []int64{1}, museumIDs(v.Museums))
	require.Len(t, v.Markers, 1)
	assert.Equal(t, int64(1), v.Markers[0].ID)
}

func TestDirectoryClearResetsToViewportFilter(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))

	// Three museums total; bounds leave two inside, one outside.
	dir.BoundsChanged(eastBounds)
	dir.SetQuery("昆虫")
	hovered := int64(1)
	dir.Hover(&hovered)
	dir.Click(&hovered)
	dir.View() // consume the query's reset flag

	dir.Clear()
	v := dir.View()

	assert.Equal(t, "", v.Query)
	assert.Nil(t, v.HoveredID)
	assert.Nil(t, v.ClickedID)
	assert.True(t, v.ResetView, "clearing must ask the map to re-center")
	assert.Equal(t, []int64{2, 3}, museumIDs(v.Museums))

	// The flag is a message, consumed on read.
	assert.False(t, dir.View().ResetView)
}

func TestDirectoryEventsTab(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	require.NoError(t, dir.SetTab(TabEvents))

	v := dir.View()
	assert.Equal(t, TabEvents, v.Tab)
	// Ascending by start date; the museum-less event is included when no
	// bounds restrict.
	require.Len(t, v.Events, 3)
	assert.Equal(t, int64(12), v.Events[0].ID)
	assert.Equal(t, int64(10), v.Events[1].ID)
	assert.Equal(t, int64(11), v.Events[2].ID)

	// Markers carry per-museum event counts on the events tab.
	require.Len(t, v.Markers, 2)
	for _, m := range v.Markers {
		assert.Equal(t, 1, m.EventCount)
	}
}

func TestDirectoryEventsBoundsFilter(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	require.NoError(t, dir.SetTab(TabEvents))
	dir.BoundsChanged(kansaiBounds) // only museum 1 visible

	v := dir.View()
	// Only events owned by a visible museum; museum-less events drop out
	// under a bounds filter.
	require.Len(t, v.Events, 1)
	assert.Equal(t, int64(10), v.Events[0].ID)
}

func TestDirectoryEventsMarkerCountsIgnoreViewport(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	require.NoError(t, dir.SetTab(TabEvents))
	dir.BoundsChanged(kansaiBounds) // only museum 1 visible

	v := dir.View()
	// The list is bounds-filtered, the map is not: every event-linked museum
	// keeps its pin and its real event count.
	require.Len(t, v.Markers, 2)
	for _, m := range v.Markers {
		assert.Equal(t, 1, m.EventCount, "museum %d", m.ID)
	}
}

func TestDirectoryEventOrder(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	require.NoError(t, dir.SetTab(TabEvents))
	require.NoError(t, dir.SetEventOrder(search.OrderDesc))

	v := dir.View()
	require.Len(t, v.Events, 3)
	assert.Equal(t, int64(11), v.Events[0].ID)

	assert.Error(t, dir.SetEventOrder(search.Order("soonest")))
	assert.Error(t, dir.SetTab(Tab("favorites")))
}

func TestDirectoryTabSwitchKeepsQuery(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	dir.SetQuery("伊丹")
	require.NoError(t, dir.SetTab(TabEvents))

	v := dir.View()
	assert.Equal(t, "伊丹", v.Query)
	// The same query re-evaluates against the events candidate set.
	require.Len(t, v.Events, 1)
	assert.Equal(t, int64(10), v.Events[0].ID)
}

func TestDirectoryDataLoadedRecomputesUnchangedBounds(t *testing.T) {
	snap := NewSnapshot(zerolog.Nop())
	dir := NewDirectory(snap)
	dir.BoundsChanged(eastBounds)
	assert.Empty(t, dir.View().Museums)

	// Data arrives under an unmoved viewport.
	loaded := loadedSnapshot(t)
	dir.snap = loaded
	dir.DataLoaded()

	v := dir.View()
	assert.Equal(t, []int64{2, 3}, museumIDs(v.Museums))
}

func TestDirectoryPanWithSameMembershipKeepsSet(t *testing.T) {
	dir := NewDirectory(loadedSnapshot(t))
	dir.BoundsChanged(eastBounds)
	first := dir.View().VisibleIDs

	// Nudged box, same pins inside: the set is kept, not replaced.
	nudged := eastBounds
	nudged.MaxLon += 0.1
	dir.BoundsChanged(nudged)

	assert.Equal(t, first, dir.View().VisibleIDs)
}

func TestSessionsRecomputeWhenLoadCompletes(t *testing.T) {
	museums := fixtureMuseums()
	repo := new(MockSnapshotRepository)
	repo.On("ListMuseums", mock.Anything).Return(museums, nil)
	repo.On("ListEventsWithMuseums", mock.Anything).Return(fixtureEvents(museums), nil)

	snap := NewSnapshot(zerolog.Nop())
	sessions := NewSessions(snap)
	_, dir := sessions.Create()

	// Bounds arrive while the initial fetch is still in flight.
	dir.BoundsChanged(models.WorldBounds())
	assert.ErrorIs(t, dir.Err(), ErrLoading)
	assert.Empty(t, dir.View().Museums)

	require.NoError(t, snap.Load(context.Background(), repo))

	// The viewport never moved; completing the load must repopulate the
	// visible set on its own.
	v := dir.View()
	assert.NoError(t, dir.Err())
	assert.Equal(t, []int64{2, 3, 1}, museumIDs(v.Museums))
	assert.ElementsMatch(t, []int64{1, 2, 3}, v.VisibleIDs)
}

func TestSessionsCreatedAfterLoadSeeData(t *testing.T) {
	snap := NewSnapshot(zerolog.Nop())
	sessions := NewSessions(snap)

	museums := fixtureMuseums()
	repo := new(MockSnapshotRepository)
	repo.On("ListMuseums", mock.Anything).Return(museums, nil)
	repo.On("ListEventsWithMuseums", mock.Anything).Return(fixtureEvents(museums), nil)
	require.NoError(t, snap.Load(context.Background(), repo))

	_, dir := sessions.Create()
	dir.BoundsChanged(models.WorldBounds())
	assert.ElementsMatch(t, []int64{1, 2, 3}, dir.View().VisibleIDs)
}

func TestSessions(t *testing.T) {
	sessions := NewSessions(loadedSnapshot(t))

	id, dir := sessions.Create()
	require.NotEmpty(t, id)
	require.NotNil(t, dir)
	assert.Equal(t, 1, sessions.Len())

	got, ok := sessions.Get(id)
	require.True(t, ok)
	assert.Same(t, dir, got)

	_, ok = sessions.Get("missing")
	assert.False(t, ok)

	sessions.Delete(id)
	assert.Equal(t, 0, sessions.Len())
	sessions.Delete(id) // idempotent
}
