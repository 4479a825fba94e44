package publishedresumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"career-backend/internal/resumes"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const publishedColumns = `id, user_id, source_resume_id, slug, version, is_public, public_expires_at, snapshot, created_at, updated_at`

func (r *PGRepo) Insert(ctx context.Context, published PublishedResume) error {
	const query = `
INSERT INTO published_resumes (
    id, user_id, source_resume_id, slug, version, is_public, public_expires_at, snapshot, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

	snapshot, err := json.Marshal(published.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		published.ID,
		published.UserID,
		published.SourceResumeID,
		published.Slug,
		published.Version,
		published.IsPublic,
		published.PublicExpiresAt,
		snapshot,
	)
	return classifyUniqueViolation(err)
}

func (r *PGRepo) Update(ctx context.Context, published PublishedResume) error {
	const query = `
UPDATE published_resumes
SET slug = $1,
    is_public = $2,
    public_expires_at = $3,
    snapshot = $4,
    updated_at = now()
WHERE user_id = $5 AND source_resume_id = $6`

	snapshot, err := json.Marshal(published.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		published.Slug,
		published.IsPublic,
		published.PublicExpiresAt,
		snapshot,
		published.UserID,
		published.SourceResumeID,
	)
	if err != nil {
		return classifyUniqueViolation(err)
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) GetBySource(ctx context.Context, userID, sourceResumeID string) (PublishedResume, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM published_resumes
WHERE user_id = $1 AND source_resume_id = $2
LIMIT 1`, publishedColumns)

	return r.queryOne(ctx, query, userID, sourceResumeID)
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (PublishedResume, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM published_resumes
WHERE slug = $1
LIMIT 1`, publishedColumns)

	return r.queryOne(ctx, query, slug)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]PublishedResume, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM published_resumes
WHERE user_id = $1
ORDER BY updated_at DESC`, publishedColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PublishedResume
	for rows.Next() {
		published, err := scanPublished(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, published)
	}
	return out, rows.Err()
}

func (r *PGRepo) queryOne(ctx context.Context, query string, args ...any) (PublishedResume, error) {
	row := r.DB.QueryRowContext(ctx, query, args...)
	published, err := scanPublished(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PublishedResume{}, ErrNotFound
		}
		return PublishedResume{}, err
	}
	return published, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPublished(row rowScanner) (PublishedResume, error) {
	var published PublishedResume
	var expiresAt sql.NullTime
	var snapshot []byte
	if err := row.Scan(
		&published.ID,
		&published.UserID,
		&published.SourceResumeID,
		&published.Slug,
		&published.Version,
		&published.IsPublic,
		&expiresAt,
		&snapshot,
		&published.CreatedAt,
		&published.UpdatedAt,
	); err != nil {
		return PublishedResume{}, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		published.PublicExpiresAt = &t
	}
	if len(snapshot) > 0 {
		var decoded resumes.Resume
		if err := json.Unmarshal(snapshot, &decoded); err != nil {
			return PublishedResume{}, fmt.Errorf("decode snapshot: %w", err)
		}
		published.Snapshot = decoded
	}
	return published, nil
}

// classifyUniqueViolation maps Postgres unique violations onto domain
// errors so the service can resolve publish races and slug collisions.
func classifyUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "slug") {
			return ErrSlugTaken
		}
		return ErrConflict
	}
	return err
}

var _ Repo = (*PGRepo)(nil)
