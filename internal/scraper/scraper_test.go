package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"museum-map-api/internal/models"
)

type MockUpserter struct {
	mock.Mock
}

func (m *MockUpserter) UpsertEvent(ctx context.Context, museumID int64, event models.Event) error {
	args := m.Called(ctx, museumID, event)
	return args.Error(0)
}

func listingServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScraperRun(t *testing.T) {
	srv := listingServer(t, http.StatusOK, listingPage)
	store := new(MockUpserter)
	store.On("UpsertEvent", mock.Anything, int64(7), mock.AnythingOfType("models.Event")).Return(nil)

	s := NewScraper(srv.Client(), fixedClock(t), zerolog.Nop())
	written, err := s.Run(context.Background(), srv.URL, 7, store)

	require.NoError(t, err)
	assert.Equal(t, 3, written)
	store.AssertNumberOfCalls(t, "UpsertEvent", 3)
}

func TestScraperRunContinuesPastUpsertFailure(t *testing.T) {
	srv := listingServer(t, http.StatusOK, listingPage)
	store := new(MockUpserter)
	store.On("UpsertEvent", mock.Anything, int64(7), mock.MatchedBy(func(e models.Event) bool {
		return e.Title == "夜の昆虫展"
	})).Return(errors.New("connection reset"))
	store.On("UpsertEvent", mock.Anything, int64(7), mock.Anything).Return(nil)

	s := NewScraper(srv.Client(), fixedClock(t), zerolog.Nop())
	written, err := s.Run(context.Background(), srv.URL, 7, store)

	require.NoError(t, err)
	assert.Equal(t, 2, written)
	store.AssertNumberOfCalls(t, "UpsertEvent", 3)
}

func TestScraperFetchNonOKStatus(t *testing.T) {
	srv := listingServer(t, http.StatusNotFound, "not found")

	s := NewScraper(srv.Client(), fixedClock(t), zerolog.Nop())
	_, err := s.Fetch(context.Background(), srv.URL)

	assert.ErrorContains(t, err, "status 404")
}
