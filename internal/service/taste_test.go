package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/sse"
)

func TestTasteService_GetUnansweredIsEmpty(t *testing.T) {
	svc := NewTasteService(newTestStore(t), nil, nil, testLogger())

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Empty(t, p.FavoriteCuisine)
	assert.Empty(t, p.Adventurousness)
}

func TestTasteService_SaveCanonicalizesAndNotifies(t *testing.T) {
	events := &recordingEmitter{}
	invalidator := &countingInvalidator{}
	svc := NewTasteService(newTestStore(t), events, invalidator, testLogger())
	ctx := context.Background()

	saved, err := svc.Save(ctx, &domain.TasteProfile{
		UserID:          "u1",
		FavoriteCuisine: "ramen",
		Adventurousness: domain.AdventureAlways,
		DiningVibe:      domain.VibeDateNight,
		PriceTier:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Japanese", saved.FavoriteCuisine)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Japanese", got.FavoriteCuisine)
	assert.Equal(t, domain.AdventureAlways, got.Adventurousness)
	assert.Equal(t, 3, got.PriceTier)

	assert.Equal(t, []sse.EventType{sse.EventTasteUpdated}, events.types())
	assert.Equal(t, []string{"u1"}, invalidator.users)
}

func TestTasteService_SaveRejectsUnknownValues(t *testing.T) {
	svc := NewTasteService(newTestStore(t), nil, nil, testLogger())

	_, err := svc.Save(context.Background(), &domain.TasteProfile{UserID: "u1", Adventurousness: "reckless"})
	assert.True(t, errors.Is(err, domainerrors.Validation("")))

	_, err = svc.Save(context.Background(), &domain.TasteProfile{UserID: "u1", PriceTier: 7})
	assert.True(t, errors.Is(err, domainerrors.Validation("")))
}
