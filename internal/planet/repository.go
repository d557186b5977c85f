package planet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"planetgen/internal/shared/database"
)

var ErrNotFound = errors.New("planet: not found in catalog")

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const catalogColumns = `seed, name, surface_type, orbit_radius, orbit_speed, orbit_tilt, size, color, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*CatalogEntry, error) {
	var entry CatalogEntry
	var color string
	err := row.Scan(
		&entry.Seed,
		&entry.Name,
		&entry.Profile.SurfaceType,
		&entry.Profile.OrbitRadius,
		&entry.Profile.OrbitSpeed,
		&entry.Profile.OrbitTilt,
		&entry.Profile.Size,
		&color,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := entry.Profile.Color.UnmarshalText([]byte(color)); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SavePlanet inserts or renames a catalog entry keyed by seed.
func (r *Repository) SavePlanet(ctx context.Context, entry *CatalogEntry) (*CatalogEntry, error) {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "save_planet",
		"seed", entry.Seed,
		"surface_type", entry.Profile.SurfaceType,
	)
	logger.Debug("Saving planet")

	query := `
		INSERT INTO planets (seed, name, surface_type, orbit_radius, orbit_speed, orbit_tilt, size, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (seed) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING ` + catalogColumns

	p := entry.Profile
	saved, err := scanEntry(r.db.QueryRowContext(ctx, query,
		entry.Seed, entry.Name, p.SurfaceType, p.OrbitRadius, p.OrbitSpeed, p.OrbitTilt, p.Size, p.Color.Hex(),
	))
	if err != nil {
		logger.Error("Failed to save planet", "error", err)
		return nil, fmt.Errorf("failed to save planet: %w", err)
	}

	logger.Debug("Planet saved successfully")
	return saved, nil
}

func (r *Repository) GetBySeed(ctx context.Context, seed int32) (*CatalogEntry, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_by_seed", "seed", seed)
	logger.Debug("Getting planet by seed")

	query := `SELECT ` + catalogColumns + ` FROM planets WHERE seed = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, seed))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to get planet", "error", err)
		return nil, fmt.Errorf("failed to get planet: %w", err)
	}
	return entry, nil
}

func (r *Repository) ListPlanets(ctx context.Context, limit, offset int) ([]CatalogEntry, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "list_planets", "limit", limit, "offset", offset)
	logger.Debug("Listing planets")

	query := `SELECT ` + catalogColumns + ` FROM planets ORDER BY seed LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var entries []CatalogEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Planets retrieved", "count", len(entries))
	return entries, nil
}

func (r *Repository) DeletePlanet(ctx context.Context, seed int32) error {
	logger := r.logger.With("component", "planet_repository", "operation", "delete_planet", "seed", seed)

	result, err := r.db.ExecContext(ctx, `DELETE FROM planets WHERE seed = $1`, seed)
	if err != nil {
		logger.Error("Failed to delete planet", "error", err)
		return fmt.Errorf("failed to delete planet: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	logger.Info("Planet deleted")
	return nil
}
