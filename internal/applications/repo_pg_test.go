package applications

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListBuildsFilteredQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "company_name", "role", "status",
		"applied_at", "interview_at", "deadline_at", "url", "notes", "tags",
		"created_at", "updated_at",
	}).AddRow(
		"app-1", "user-1", "CompanyX", "Backend Engineer", StatusApplied,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil, nil, nil, nil,
		[]byte(`["remote"]`), now, now,
	)

	mock.ExpectQuery(`SELECT .+ FROM applications WHERE user_id = \$1 AND status = \$2 AND applied_at >= \$3 AND applied_at <= \$4`).
		WithArgs("user-1", StatusApplied, "2024-05-01", "2024-05-31").
		WillReturnRows(rows)

	apps, err := repo.List(context.Background(), "user-1", ListFilter{
		Status: StatusApplied,
		From:   "2024-05-01",
		To:     "2024-05-31",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("len = %d, want 1", len(apps))
	}
	if apps[0].AppliedAt != "2024-05-01" {
		t.Fatalf("applied at = %q", apps[0].AppliedAt)
	}
	if len(apps[0].Tags) != 1 || apps[0].Tags[0] != "remote" {
		t.Fatalf("tags = %v", apps[0].Tags)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteMissingRowReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM applications").
		WithArgs("user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("Delete err = %v, want ErrNotFound", err)
	}
}
