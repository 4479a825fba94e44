package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// PGRepo implements Repo using Postgres. List queries are assembled
// with squirrel because the kanban and calendar views filter on
// different column combinations.
type PGRepo struct {
	DB *sql.DB
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const applicationColumns = `id, user_id, company_name, role, status, applied_at, interview_at, deadline_at, url, notes, tags, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id, user_id, company_name, role, status, applied_at, interview_at, deadline_at, url, notes, tags, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`

	tags, err := marshalTags(app.Tags)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.UserID,
		app.CompanyName,
		app.Role,
		app.Status,
		nullableDate(app.AppliedAt),
		app.InterviewAt,
		nullableDate(app.DeadlineAt),
		nullableValue(app.URL),
		nullableValue(app.Notes),
		tags,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM applications
WHERE user_id = $1 AND id = $2
LIMIT 1`, applicationColumns)

	row := r.DB.QueryRowContext(ctx, query, userID, appID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func (r *PGRepo) List(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	builder := psql.
		Select(
			"id", "user_id", "company_name", "role", "status",
			"applied_at", "interview_at", "deadline_at", "url", "notes", "tags",
			"created_at", "updated_at",
		).
		From("applications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Tag != "" {
		builder = builder.Where("tags @> ?", fmt.Sprintf(`[%q]`, filter.Tag))
	}
	if filter.From != "" {
		builder = builder.Where(sq.GtOrEq{"applied_at": filter.From})
	}
	if filter.To != "" {
		builder = builder.Where(sq.LtOrEq{"applied_at": filter.To})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE applications
SET company_name = $1,
    role = $2,
    status = $3,
    applied_at = $4,
    interview_at = $5,
    deadline_at = $6,
    url = $7,
    notes = $8,
    tags = $9,
    updated_at = now()
WHERE user_id = $10 AND id = $11`

	tags, err := marshalTags(app.Tags)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		app.CompanyName,
		app.Role,
		app.Status,
		nullableDate(app.AppliedAt),
		app.InterviewAt,
		nullableDate(app.DeadlineAt),
		nullableValue(app.URL),
		nullableValue(app.Notes),
		tags,
		app.UserID,
		app.ID,
	)
	if err != nil {
		return err
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, appID string) error {
	const query = `DELETE FROM applications WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, appID)
	if err != nil {
		return err
	}
	deleted, _ := res.RowsAffected()
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var appliedAt, deadlineAt sql.NullTime
	var interviewAt sql.NullTime
	var url, notes sql.NullString
	var tags []byte
	if err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.CompanyName,
		&app.Role,
		&app.Status,
		&appliedAt,
		&interviewAt,
		&deadlineAt,
		&url,
		&notes,
		&tags,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return Application{}, err
	}
	if appliedAt.Valid {
		app.AppliedAt = appliedAt.Time.Format("2006-01-02")
	}
	if interviewAt.Valid {
		t := interviewAt.Time
		app.InterviewAt = &t
	}
	if deadlineAt.Valid {
		app.DeadlineAt = deadlineAt.Time.Format("2006-01-02")
	}
	app.URL = url.String
	app.Notes = notes.String
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &app.Tags); err != nil {
			return Application{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	if app.Tags == nil {
		app.Tags = []string{}
	}
	return app, nil
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return raw, nil
}

func nullableDate(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableValue(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
