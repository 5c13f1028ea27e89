package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/store"
)

// UpsertRating records a user's rating for a restaurant.
//
// An existing manual rank is kept when the rating changes. Clearing the
// rating also clears the rank, since unrated restaurants are not ranked.
func (s *Store) UpsertRating(ctx context.Context, rating *domain.Rating) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, restaurant_id, rating, manual_rank, notes, visited_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, ?, ?)
		ON CONFLICT (user_id, restaurant_id) DO UPDATE SET
			rating = excluded.rating,
			manual_rank = CASE WHEN excluded.rating IS NULL THEN NULL ELSE ratings.manual_rank END,
			notes = excluded.notes,
			visited_at = excluded.visited_at,
			updated_at = excluded.updated_at`,
		rating.UserID,
		rating.RestaurantID,
		nullFloat(rating.Rating),
		nullString(rating.Notes),
		formatTime(rating.VisitedAt),
		formatTime(rating.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithMessage("restaurant not found")
		}
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// GetRating returns one user's rating for a restaurant.
// Returns store.ErrNotFound if the user has not logged it.
func (s *Store) GetRating(ctx context.Context, userID, restaurantID string) (*domain.Rating, error) {
	r := domain.Rating{UserID: userID, RestaurantID: restaurantID}

	var (
		value     sql.NullFloat64
		rank      sql.NullInt64
		notes     sql.NullString
		visitedAt string
		updatedAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT rating, manual_rank, notes, visited_at, updated_at
		FROM ratings WHERE user_id = ? AND restaurant_id = ?`,
		userID, restaurantID,
	).Scan(&value, &rank, &notes, &visitedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	r.Rating = floatPtr(value)
	r.ManualRank = intPtr(rank)
	r.Notes = notes.String
	if r.VisitedAt, err = parseTime(visitedAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRating removes a restaurant from a user's log.
// Returns store.ErrNotFound if it was not logged.
func (s *Store) DeleteRating(ctx context.Context, userID, restaurantID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM ratings WHERE user_id = ? AND restaurant_id = ?`, userID, restaurantID)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListRatedItems returns every restaurant the user has logged, with the
// attributes the ranking and preference engines need. Rows come back in
// visit order so equal ratings order deterministically.
func (s *Store) ListRatedItems(ctx context.Context, userID string) ([]domain.RatedItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ra.restaurant_id, ra.rating, ra.manual_rank, r.cuisine, r.city, r.price_tier
		FROM ratings ra
		JOIN restaurants r ON r.id = ra.restaurant_id
		WHERE ra.user_id = ?
		ORDER BY ra.visited_at, ra.restaurant_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list rated items: %w", err)
	}
	defer rows.Close()

	items := []domain.RatedItem{}
	for rows.Next() {
		var (
			item   domain.RatedItem
			rating sql.NullFloat64
			rank   sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &rating, &rank, &item.Cuisine, &item.City, &item.PriceTier); err != nil {
			return nil, err
		}
		item.Rating = floatPtr(rating)
		item.ManualRank = intPtr(rank)
		items = append(items, item)
	}
	return items, rows.Err()
}

// ApplyRankUpdates writes a batch of manual ranks in one transaction.
//
// Affected ranks are cleared first and then reassigned so intermediate
// states never trip the per-user unique rank index; readers see either the
// old ranks or the new ones. Returns store.ErrNotFound if any item is not in
// the user's log and store.ErrAlreadyExists if the result would duplicate a
// rank held by an item outside the batch.
func (s *Store) ApplyRankUpdates(ctx context.Context, userID string, updates []domain.RankUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range updates {
		result, err := tx.ExecContext(ctx,
			`UPDATE ratings SET manual_rank = NULL WHERE user_id = ? AND restaurant_id = ?`,
			userID, u.ItemID)
		if err != nil {
			return fmt.Errorf("clear rank %s: %w", u.ItemID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound.WithMessage(fmt.Sprintf("restaurant %s is not in the user's log", u.ItemID))
		}
	}

	for _, u := range updates {
		_, err := tx.ExecContext(ctx,
			`UPDATE ratings SET manual_rank = ? WHERE user_id = ? AND restaurant_id = ?`,
			u.NewManualRank, userID, u.ItemID)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("rank %d already taken", u.NewManualRank))
			}
			return fmt.Errorf("set rank %s: %w", u.ItemID, err)
		}
	}

	return tx.Commit()
}
