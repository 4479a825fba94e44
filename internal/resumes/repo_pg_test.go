package resumes

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSetPrimaryRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE resumes SET is_primary = FALSE, updated_at = now() WHERE user_id = $1 AND is_primary`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE resumes SET is_primary = TRUE, updated_at = now() WHERE user_id = $1 AND id = $2`)).
		WithArgs("user-1", "resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.SetPrimary(context.Background(), "user-1", "resume-2"); err != nil {
		t.Fatalf("set primary: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoSetPrimaryUnknownResumeRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE resumes SET is_primary = FALSE`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE resumes SET is_primary = TRUE`)).
		WithArgs("user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	if err := repo.SetPrimary(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoDeleteDistinguishesPrimaryFromMissing(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "non-primary row deleted",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM resumes WHERE user_id = $1 AND id = $2 AND is_primary = FALSE`)).
					WithArgs("user-1", "resume-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: nil,
		},
		{
			name: "primary row rejected",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM resumes`)).
					WithArgs("user-1", "resume-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT is_primary FROM resumes WHERE user_id = $1 AND id = $2`)).
					WithArgs("user-1", "resume-1").
					WillReturnRows(sqlmock.NewRows([]string{"is_primary"}).AddRow(true))
			},
			wantErr: ErrPrimaryDelete,
		},
		{
			name: "missing row",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM resumes`)).
					WithArgs("user-1", "resume-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT is_primary FROM resumes`)).
					WithArgs("user-1", "resume-1").
					WillReturnRows(sqlmock.NewRows([]string{"is_primary"}))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer db.Close()

			tc.prepare(mock)

			repo := &PGRepo{DB: db}
			err = repo.Delete(context.Background(), "user-1", "resume-1")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestPGRepoListByUserExcludesArchivedByDefault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{
		"id", "user_id", "name", "is_primary", "is_public", "is_archived", "completeness", "slug",
		"full_name", "name_kana", "birth_date", "age", "phone", "email", "postal_code", "prefecture",
		"city", "address_line", "building", "website_url", "github_url", "linkedin_url", "self_pr",
		"education", "work_experience", "certifications", "awards", "languages", "skills", "preferences",
		"created_at", "updated_at",
	}
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(cols).AddRow(
		"resume-1", "user-1", "Main", true, false, false, 40, nil,
		"山田 太郎", nil, nil, 30, nil, nil, nil, "東京都",
		nil, nil, nil, nil, nil, nil, "Backend engineer.",
		[]byte(`[]`), []byte(`[{"companyName":"CompanyX","startDate":"2019-04","isCurrent":true,"positions":[]}]`),
		[]byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`{}`),
		now, now,
	)

	mock.ExpectQuery(`SELECT .+ FROM resumes WHERE user_id = \$1 AND is_archived = FALSE ORDER BY is_primary DESC, created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	out, err := repo.ListByUser(context.Background(), "user-1", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	got := out[0]
	if got.FullName != "山田 太郎" || got.Prefecture != "東京都" || !got.IsPrimary {
		t.Fatalf("decoded row = %+v", got)
	}
	if len(got.WorkExperience) != 1 || got.WorkExperience[0].CompanyName != "CompanyX" {
		t.Fatalf("work experience = %+v", got.WorkExperience)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
