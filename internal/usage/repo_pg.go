package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Reads and consumes lock the
// user's row so the window rollover and the limit check are atomic
// under concurrent parse calls.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Usage, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() { _ = tx.Rollback() }()

	u, err := lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Usage{}, err
	}
	return u, tx.Commit()
}

func (r *PGRepo) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	if n <= 0 {
		return r.Get(ctx, userID)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() { _ = tx.Rollback() }()

	u, err := lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Usage{}, err
	}
	if u.Used+n > u.Limit {
		return Usage{}, ErrLimitReached
	}
	u.Used += n
	if _, err := tx.ExecContext(ctx,
		`UPDATE usage SET used = $1 WHERE user_id = $2`, u.Used, userID); err != nil {
		return Usage{}, err
	}
	return u, tx.Commit()
}

func (r *PGRepo) Reset(ctx context.Context, userID string) (Usage, error) {
	now := time.Now().UTC()
	u := defaultUsage(now)
	const query = `
INSERT INTO usage (user_id, plan, limit_amount, used, resets_at)
VALUES ($1, $2, $3, 0, $4)
ON CONFLICT (user_id) DO UPDATE
SET used = 0, resets_at = EXCLUDED.resets_at`
	if _, err := r.DB.ExecContext(ctx, query, userID, u.Plan, u.Limit, u.ResetsAt); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Usage, error) {
	var u Usage
	row := tx.QueryRowContext(ctx,
		`SELECT plan, limit_amount, used, resets_at FROM usage WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&u.Plan, &u.Limit, &u.Used, &u.ResetsAt)
	now := time.Now().UTC()
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return Usage{}, err
		}
		u = defaultUsage(now)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO usage (user_id, plan, limit_amount, used, resets_at) VALUES ($1, $2, $3, $4, $5)`,
			userID, u.Plan, u.Limit, u.Used, u.ResetsAt); err != nil {
			return Usage{}, err
		}
		return u, nil
	}

	if !now.Before(u.ResetsAt) {
		u.Used = 0
		u.ResetsAt = now.Add(periodLength)
		if _, err := tx.ExecContext(ctx,
			`UPDATE usage SET used = $1, resets_at = $2 WHERE user_id = $3`,
			u.Used, u.ResetsAt, userID); err != nil {
			return Usage{}, err
		}
	}
	return u, nil
}

var _ Repo = (*PGRepo)(nil)
