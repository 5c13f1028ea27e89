package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/store"
)

// GetTasteProfile returns the user's questionnaire answers.
// Returns store.ErrNotFound if the user never filled it in.
func (s *Store) GetTasteProfile(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	p := domain.TasteProfile{UserID: userID}

	var (
		favorite        sql.NullString
		adventurousness sql.NullString
		vibe            sql.NullString
		priority        sql.NullString
		dietary         sql.NullString
		updatedAt       string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT favorite_cuisine, adventurousness, price_tier, dining_vibe,
			priority, dietary, party_size, updated_at
		FROM taste_profiles WHERE user_id = ?`, userID,
	).Scan(&favorite, &adventurousness, &p.PriceTier, &vibe, &priority, &dietary, &p.PartySize, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get taste profile: %w", err)
	}

	p.FavoriteCuisine = favorite.String
	p.Adventurousness = domain.Adventurousness(adventurousness.String)
	p.DiningVibe = domain.DiningVibe(vibe.String)
	p.Priority = domain.Priority(priority.String)
	p.Dietary = domain.Dietary(dietary.String)
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveTasteProfile creates or replaces the user's questionnaire answers.
func (s *Store) SaveTasteProfile(ctx context.Context, p *domain.TasteProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO taste_profiles (
			user_id, favorite_cuisine, adventurousness, price_tier, dining_vibe,
			priority, dietary, party_size, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			favorite_cuisine = excluded.favorite_cuisine,
			adventurousness = excluded.adventurousness,
			price_tier = excluded.price_tier,
			dining_vibe = excluded.dining_vibe,
			priority = excluded.priority,
			dietary = excluded.dietary,
			party_size = excluded.party_size,
			updated_at = excluded.updated_at`,
		p.UserID,
		nullString(p.FavoriteCuisine),
		nullString(string(p.Adventurousness)),
		p.PriceTier,
		nullString(string(p.DiningVibe)),
		nullString(string(p.Priority)),
		nullString(string(p.Dietary)),
		p.PartySize,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save taste profile: %w", err)
	}
	return nil
}
