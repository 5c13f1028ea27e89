package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/store"
)

// candidateQuery selects restaurants the user has not logged yet, with the
// count and mean of their friends' ratings. Callers append extra conditions
// and their arguments after the two user ID parameters.
const candidateQuery = `
	SELECT r.id, r.name, r.cuisine, r.city, r.price_tier, r.external_rating,
		r.is_open_now, r.expert_endorsed,
		COUNT(fr.rating), COALESCE(AVG(fr.rating), 0)
	FROM restaurants r
	LEFT JOIN ratings fr ON fr.restaurant_id = r.id
		AND fr.rating IS NOT NULL
		AND fr.user_id IN (SELECT friend_id FROM friendships WHERE user_id = ?)
	WHERE r.id NOT IN (SELECT restaurant_id FROM ratings WHERE user_id = ?)`

// ListCandidates returns restaurants eligible for recommendation to the user.
func (s *Store) ListCandidates(ctx context.Context, userID string, filter store.CandidateFilter) ([]domain.Candidate, error) {
	var (
		conds []string
		args  = []any{userID, userID}
	)
	if filter.City != "" {
		conds = append(conds, "r.city = ?")
		args = append(args, filter.City)
	}
	if filter.Cuisine != "" {
		conds = append(conds, "r.cuisine = ?")
		args = append(args, filter.Cuisine)
	}
	if filter.OpenNow {
		conds = append(conds, "r.is_open_now = 1")
	}

	query := candidateQuery
	if len(conds) > 0 {
		query += " AND " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY r.id ORDER BY r.name, r.id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	return s.queryCandidates(ctx, query, args...)
}

// GetCandidates returns the listed restaurants as candidates, skipping any the
// user already logged or that do not exist. Input order is preserved.
func (s *Store) GetCandidates(ctx context.Context, userID string, restaurantIDs []string) ([]domain.Candidate, error) {
	if len(restaurantIDs) == 0 {
		return []domain.Candidate{}, nil
	}

	args := make([]any, 0, len(restaurantIDs)+2)
	args = append(args, userID, userID)
	for _, id := range restaurantIDs {
		args = append(args, id)
	}

	query := candidateQuery + " AND r.id IN (" + placeholders(len(restaurantIDs)) + ") GROUP BY r.id"
	found, err := s.queryCandidates(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Candidate, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	ordered := make([]domain.Candidate, 0, len(found))
	for _, id := range restaurantIDs {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (s *Store) queryCandidates(ctx context.Context, query string, args ...any) ([]domain.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var (
			c              domain.Candidate
			externalRating sql.NullFloat64
		)
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Cuisine,
			&c.City,
			&c.PriceTier,
			&externalRating,
			&c.IsOpenNow,
			&c.ExpertEndorsed,
			&c.FriendRatingCount,
			&c.FriendAverageRating,
		); err != nil {
			return nil, err
		}
		c.ExternalRating = floatPtr(externalRating)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// AddFriendship records a mutual friendship. Adding an existing pair is a no-op.
func (s *Store) AddFriendship(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return store.ErrInvalidInput.WithMessage("cannot befriend yourself")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	for _, pair := range [][2]string{{userID, friendID}, {friendID, userID}} {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO friendships (user_id, friend_id, created_at) VALUES (?, ?, ?)`,
			pair[0], pair[1], now); err != nil {
			return fmt.Errorf("add friendship: %w", err)
		}
	}
	return tx.Commit()
}
