package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/store"
)

// restaurantColumns is the ordered list of columns selected in restaurant queries.
// Must match the scan order in scanRestaurant.
const restaurantColumns = `id, created_at, updated_at, name, cuisine, city, address,
	price_tier, external_rating, is_open_now, expert_endorsed`

func scanRestaurant(scanner interface{ Scan(dest ...any) error }) (*domain.Restaurant, error) {
	var r domain.Restaurant

	var (
		createdAt      string
		updatedAt      string
		address        sql.NullString
		externalRating sql.NullFloat64
	)

	err := scanner.Scan(
		&r.ID,
		&createdAt,
		&updatedAt,
		&r.Name,
		&r.Cuisine,
		&r.City,
		&address,
		&r.PriceTier,
		&externalRating,
		&r.IsOpenNow,
		&r.ExpertEndorsed,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	r.Address = address.String
	r.ExternalRating = floatPtr(externalRating)

	return &r, nil
}

// CreateRestaurant inserts a new restaurant.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO restaurants (
			id, created_at, updated_at, name, cuisine, city, address,
			price_tier, external_rating, is_open_now, expert_endorsed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
		r.Name,
		r.Cuisine,
		r.City,
		nullString(r.Address),
		r.PriceTier,
		nullFloat(r.ExternalRating),
		boolInt(r.IsOpenNow),
		boolInt(r.ExpertEndorsed),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	s.index(ctx, r)
	return nil
}

// GetRestaurant retrieves a restaurant by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?`, id)

	r, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return r, nil
}

// UpdateRestaurant replaces a restaurant's mutable fields.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE restaurants SET
			updated_at = ?, name = ?, cuisine = ?, city = ?, address = ?,
			price_tier = ?, external_rating = ?, is_open_now = ?, expert_endorsed = ?
		WHERE id = ?`,
		formatTime(r.UpdatedAt),
		r.Name,
		r.Cuisine,
		r.City,
		nullString(r.Address),
		r.PriceTier,
		nullFloat(r.ExternalRating),
		boolInt(r.IsOpenNow),
		boolInt(r.ExpertEndorsed),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	s.index(ctx, r)
	return nil
}

// ListRestaurants returns restaurants ordered by ID using cursor pagination.
func (s *Store) ListRestaurants(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Restaurant], error) {
	params.Validate()

	after, err := store.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, store.ErrInvalidInput.WithCause(err)
	}

	// Fetch one extra row to learn whether another page exists.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id > ? ORDER BY id LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	items, err := collectRestaurants(rows)
	if err != nil {
		return nil, err
	}

	result := &store.PaginatedResult[*domain.Restaurant]{Items: items}
	if len(items) > params.Limit {
		result.Items = items[:params.Limit]
		result.HasMore = true
		result.NextCursor = store.EncodeCursor(result.Items[params.Limit-1].ID)
	}
	return result, nil
}

// ListAllRestaurants returns every restaurant. Used to rebuild the search index.
func (s *Store) ListAllRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all restaurants: %w", err)
	}
	defer rows.Close()

	return collectRestaurants(rows)
}

func collectRestaurants(rows *sql.Rows) ([]*domain.Restaurant, error) {
	var items []*domain.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// index pushes the restaurant to the search index. Index failures are logged,
// not returned: the row is already committed and a reindex will catch up.
func (s *Store) index(ctx context.Context, r *domain.Restaurant) {
	if err := s.searchIndexer.IndexRestaurant(ctx, r); err != nil {
		s.logger.Warn("failed to index restaurant", "restaurant_id", r.ID, "error", err)
	}
}
