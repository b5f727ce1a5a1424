// Package places loads the destination catalog from PostgreSQL so optimize
// requests can reference stored places by ID instead of inlining them.
package places

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Repository reads places from the destinations table
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a repository over an existing pool
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectByIDs = `
	SELECT id, name, latitude, longitude,
	       COALESCE(address, ''), COALESCE(category, ''),
	       COALESCE(visit_duration_minutes, 0),
	       COALESCE(priority, 0),
	       operating_hours
	FROM destinations
	WHERE id = ANY($1)
`

// GetByIDs loads the given places, preserving the requested order. Every
// requested ID must exist; a missing one fails the whole lookup so the
// optimizer never silently plans around absent places.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]models.Place, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, selectByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("query destinations: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Place, len(ids))
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		byID[place.ID] = place
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read destinations: %w", err)
	}

	places := make([]models.Place, 0, len(ids))
	for _, id := range ids {
		place, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("destination %s not found", id)
		}
		places = append(places, place)
	}

	return places, nil
}

// GetByCategory lists places of a category inside a bounding box, best
// priority first. Used to suggest fill-in stops near an itinerary.
func (r *Repository) GetByCategory(ctx context.Context, category string, limit int) ([]models.Place, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, latitude, longitude,
		       COALESCE(address, ''), COALESCE(category, ''),
		       COALESCE(visit_duration_minutes, 0),
		       COALESCE(priority, 0),
		       operating_hours
		FROM destinations
		WHERE category = $1
		ORDER BY priority DESC, name
		LIMIT $2
	`, category, limit)
	if err != nil {
		return nil, fmt.Errorf("query destinations by category: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read destinations: %w", err)
	}

	return places, nil
}

// scanPlace maps one destinations row onto a Place. Operating hours are
// stored as JSONB and may be NULL (always open).
func scanPlace(row pgx.Row) (models.Place, error) {
	var (
		place    models.Place
		hoursRaw []byte
	)

	err := row.Scan(
		&place.ID,
		&place.Name,
		&place.Location.Latitude,
		&place.Location.Longitude,
		&place.Address,
		&place.Category,
		&place.VisitDurationMinutes,
		&place.Priority,
		&hoursRaw,
	)
	if err != nil {
		return models.Place{}, fmt.Errorf("scan destination: %w", err)
	}

	if len(hoursRaw) > 0 {
		var hours models.OperatingHours
		if err := json.Unmarshal(hoursRaw, &hours); err != nil {
			return models.Place{}, fmt.Errorf("parse operating hours for %s: %w", place.ID, err)
		}
		place.OperatingHours = hours
	}

	place.Normalize()
	return place, nil
}

// HealthCheck verifies the destinations table is reachable
func (r *Repository) HealthCheck(ctx context.Context) error {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM destinations").Scan(&count); err != nil {
		return fmt.Errorf("destinations health check: %w", err)
	}
	return nil
}
