package repository

import (
	"context"
	"fmt"

	"coordinate-extractor/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPolygonsTable = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS polygons (
		id BIGSERIAL PRIMARY KEY,
		source_row INTEGER NOT NULL,
		ring TEXT NOT NULL,
		geom GEOGRAPHY(POLYGON, 4326) NOT NULL
	);
	CREATE INDEX IF NOT EXISTS polygons_geom_idx ON polygons USING GIST (geom);
`

// DB is the subset of pgxpool.Pool and pgx.Conn the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ DB = (*pgxpool.Pool)(nil)

// PolygonRepository stores extracted polygons in PostgreSQL with PostGIS
type PolygonRepository struct {
	db DB
}

// NewPolygonRepository creates a new PostgreSQL polygon repository
func NewPolygonRepository(db DB) *PolygonRepository {
	return &PolygonRepository{db: db}
}

// CreateSchema creates the polygons table and its spatial index if they do not exist
func (r *PolygonRepository) CreateSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createPolygonsTable); err != nil {
		return fmt.Errorf("repository: failed to create polygons table: %w", err)
	}
	return nil
}

// ReplacePolygons swaps the table contents for polygons in a single transaction
func (r *PolygonRepository) ReplacePolygons(ctx context.Context, polygons []models.Polygon) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE polygons RESTART IDENTITY"); err != nil {
		return fmt.Errorf("repository: failed to truncate polygons: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range polygons {
		batch.Queue(
			"INSERT INTO polygons (source_row, ring, geom) VALUES ($1, $2, ST_GeogFromText($3))",
			p.SourceRow, p.Ring, "SRID=4326;"+p.WKT(),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("repository: failed to insert polygons: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit polygons: %w", err)
	}
	return nil
}

// CountPolygons returns the number of stored polygons
func (r *PolygonRepository) CountPolygons(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM polygons").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count polygons: %w", err)
	}
	return count, nil
}

// FindPolygonsContaining returns the polygons that cover the given coordinates, smallest area first
func (r *PolygonRepository) FindPolygonsContaining(ctx context.Context, lat, lon float64) ([]models.Polygon, error) {
	sql := `
		SELECT id, source_row, ring
		FROM polygons
		WHERE ST_Covers(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography)
		ORDER BY ST_Area(geom) ASC, id ASC
	`

	rows, err := r.db.Query(ctx, sql, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}
	defer rows.Close()

	polygons := []models.Polygon{}
	for rows.Next() {
		var p models.Polygon
		if err := rows.Scan(&p.ID, &p.SourceRow, &p.Ring); err != nil {
			return nil, fmt.Errorf("repository: failed to scan polygon: %w", err)
		}
		p.Points, err = models.ParseRing(p.Ring)
		if err != nil {
			return nil, fmt.Errorf("repository: stored ring of polygon %d is invalid: %w", p.ID, err)
		}
		polygons = append(polygons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return polygons, nil
}
