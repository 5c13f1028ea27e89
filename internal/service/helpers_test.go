package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/sse"
	"github.com/platelistapp/platelist-server/internal/store/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recordingEmitter) Emit(e sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEmitter) types() []sse.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sse.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type countingInvalidator struct {
	mu    sync.Mutex
	users []string
}

func (c *countingInvalidator) InvalidateUser(userID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, userID)
	return 0, nil
}

func createRestaurant(t *testing.T, svc *RestaurantService, name, cuisineName, city string, tier int) *domain.Restaurant {
	t.Helper()
	r, err := svc.Create(context.Background(), CreateRestaurantInput{
		Name:      name,
		Cuisine:   cuisineName,
		City:      city,
		PriceTier: tier,
	})
	require.NoError(t, err)
	return r
}
