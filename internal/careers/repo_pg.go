package careers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const careerColumns = `id, user_id, company_name, position, status, start_date, end_date, employment_type, notes, salary_history, offer_salary, created_at, updated_at`

// Create inserts a new career record.
func (r *PGRepo) Create(ctx context.Context, career Career) error {
	const query = `
INSERT INTO careers (
    id,
    user_id,
    company_name,
    position,
    status,
    start_date,
    end_date,
    employment_type,
    notes,
    salary_history,
    offer_salary,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`

	salaryHistory, offerSalary, err := marshalSalary(career)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		career.ID,
		career.UserID,
		career.CompanyName,
		career.Position,
		career.Status,
		career.StartDate,
		nullableString(career.EndDate),
		nullableString(career.EmploymentType),
		nullableString(career.Notes),
		salaryHistory,
		offerSalary,
	)
	return err
}

// GetByID fetches a career record scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, careerID string) (Career, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM careers
WHERE user_id = $1 AND id = $2
LIMIT 1`, careerColumns)

	row := r.DB.QueryRowContext(ctx, query, userID, careerID)
	career, err := scanCareer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Career{}, ErrNotFound
		}
		return Career{}, err
	}
	return career, nil
}

// ListByUser returns a user's career records ordered by start date.
// companyName, when non-empty, restricts the list to one employer.
func (r *PGRepo) ListByUser(ctx context.Context, userID, companyName string) ([]Career, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM careers
WHERE user_id = $1`, careerColumns)
	args := []any{userID}
	if companyName != "" {
		query += ` AND company_name = $2`
		args = append(args, companyName)
	}
	query += ` ORDER BY start_date ASC, created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Career
	for rows.Next() {
		career, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, career)
	}
	return out, rows.Err()
}

// Update rewrites a career record in place, scoped to its owner.
func (r *PGRepo) Update(ctx context.Context, career Career) error {
	const query = `
UPDATE careers
SET company_name = $1,
    position = $2,
    status = $3,
    start_date = $4,
    end_date = $5,
    employment_type = $6,
    notes = $7,
    salary_history = $8,
    offer_salary = $9,
    updated_at = now()
WHERE user_id = $10 AND id = $11`

	salaryHistory, offerSalary, err := marshalSalary(career)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		career.CompanyName,
		career.Position,
		career.Status,
		career.StartDate,
		nullableString(career.EndDate),
		nullableString(career.EmploymentType),
		nullableString(career.Notes),
		salaryHistory,
		offerSalary,
		career.UserID,
		career.ID,
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

// Delete removes a career record, scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, userID, careerID string) error {
	const query = `DELETE FROM careers WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, careerID)
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

func scanCareer(row rowScanner) (Career, error) {
	var career Career
	var endDate sql.NullString
	var employmentType sql.NullString
	var notes sql.NullString
	var salaryHistory []byte
	var offerSalary []byte
	if err := row.Scan(
		&career.ID,
		&career.UserID,
		&career.CompanyName,
		&career.Position,
		&career.Status,
		&career.StartDate,
		&endDate,
		&employmentType,
		&notes,
		&salaryHistory,
		&offerSalary,
		&career.CreatedAt,
		&career.UpdatedAt,
	); err != nil {
		return Career{}, err
	}
	if endDate.Valid {
		career.EndDate = endDate.String
	}
	if employmentType.Valid {
		career.EmploymentType = employmentType.String
	}
	if notes.Valid {
		career.Notes = notes.String
	}
	if len(salaryHistory) > 0 {
		if err := json.Unmarshal(salaryHistory, &career.SalaryHistory); err != nil {
			return Career{}, fmt.Errorf("decode salary history: %w", err)
		}
	}
	if len(offerSalary) > 0 {
		if err := json.Unmarshal(offerSalary, &career.OfferSalary); err != nil {
			return Career{}, fmt.Errorf("decode offer salary: %w", err)
		}
	}
	return career, nil
}

func marshalSalary(career Career) (salaryHistory any, offerSalary any, err error) {
	if len(career.SalaryHistory) > 0 {
		raw, err := json.Marshal(career.SalaryHistory)
		if err != nil {
			return nil, nil, fmt.Errorf("encode salary history: %w", err)
		}
		salaryHistory = raw
	}
	if career.OfferSalary != nil {
		raw, err := json.Marshal(career.OfferSalary)
		if err != nil {
			return nil, nil, fmt.Errorf("encode offer salary: %w", err)
		}
		offerSalary = raw
	}
	return salaryHistory, offerSalary, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
