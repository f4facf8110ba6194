package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BYRON-lang/dashboard/internal/entity"
)

// NewWebsite carries the caller-supplied fields of a catalog entry. The store
// assigns id and uploaded_at itself; neither can be provided here.
type NewWebsite struct {
	Name              string
	URL               string
	Categories        []string
	Twitter           *string
	Instagram         *string
	BuiltWith         string
	OtherTechnologies *string
	VideoURL          *string
}

// WebsitesRepository describes persistence operations for the showcase catalog.
type WebsitesRepository interface {
	Create(ctx context.Context, input NewWebsite) (uuid.UUID, error)
	List(ctx context.Context) ([]entity.Website, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgxPool narrows pgxpool.Pool to the calls the repository makes so tests can
// substitute a stub.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGXWebsitesRepository implements WebsitesRepository using pgx.
type PGXWebsitesRepository struct {
	pool pgxPool
}

// NewPGXWebsitesRepository wires a pgx backed repository.
func NewPGXWebsitesRepository(pool *pgxpool.Pool) *PGXWebsitesRepository {
	return &PGXWebsitesRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// Create persists a new entry, assigning uploaded_at from the database clock.
func (r *PGXWebsitesRepository) Create(ctx context.Context, input NewWebsite) (uuid.UUID, error) {
	query := `
        INSERT INTO websites (
            name,
            url,
            categories,
            twitter,
            instagram,
            built_with,
            other_technologies,
            video_url,
            uploaded_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        RETURNING id;
    `

	categories := input.Categories
	if categories == nil {
		categories = []string{}
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		input.Name,
		input.URL,
		categories,
		stringOrNil(input.Twitter),
		stringOrNil(input.Instagram),
		input.BuiltWith,
		stringOrNil(input.OtherTechnologies),
		stringOrNil(input.VideoURL),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert website: %w", err)
	}

	return id, nil
}

// List returns every entry ordered most recent first. Ties on uploaded_at
// fall back to id so the ordering stays stable within one store instance.
func (r *PGXWebsitesRepository) List(ctx context.Context) ([]entity.Website, error) {
	query := `
        SELECT
            id,
            name,
            url,
            categories,
            twitter,
            instagram,
            built_with,
            other_technologies,
            video_url,
            uploaded_at
        FROM websites
        ORDER BY uploaded_at DESC, id;
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	defer rows.Close()

	return scanWebsites(rows)
}

// Delete removes the entry if present. Deleting an unknown id is a no-op,
// not an error.
func (r *PGXWebsitesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM websites WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete website %s: %w", id, err)
	}
	return nil
}

func scanWebsites(rows pgx.Rows) ([]entity.Website, error) {
	var websites []entity.Website
	for rows.Next() {
		var (
			w          entity.Website
			categories []string
			twitter    sql.NullString
			instagram  sql.NullString
			otherTech  sql.NullString
			videoURL   sql.NullString
		)

		err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.URL,
			&categories,
			&twitter,
			&instagram,
			&w.BuiltWith,
			&otherTech,
			&videoURL,
			&w.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}

		if len(categories) > 0 {
			w.Categories = append([]string(nil), categories...)
		} else {
			w.Categories = []string{}
		}
		w.SocialLinks.Twitter = nullStringToPtr(twitter)
		w.SocialLinks.Instagram = nullStringToPtr(instagram)
		w.OtherTechnologies = nullStringToPtr(otherTech)
		w.VideoURL = nullStringToPtr(videoURL)

		websites = append(websites, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate websites: %w", err)
	}
	return websites, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}

func stringOrNil(value *string) any {
	if value == nil {
		return nil
	}
	if *value == "" {
		return nil
	}
	return *value
}
