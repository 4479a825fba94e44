package careers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresSalaryAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	career := Career{
		ID:          "career-1",
		UserID:      "user-1",
		CompanyName: "CompanyX",
		Position:    "Engineer",
		Status:      StatusCurrent,
		StartDate:   "2021-04",
		SalaryHistory: []SalarySnapshot{
			{Date: "2021-04", Amount: 5000000},
		},
	}

	mock.ExpectExec("INSERT INTO careers").
		WithArgs(
			career.ID,
			career.UserID,
			career.CompanyName,
			career.Position,
			career.Status,
			career.StartDate,
			nil,              // end_date
			nil,              // employment_type
			nil,              // notes
			sqlmock.AnyArg(), // salary_history
			nil,              // offer_salary
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), career); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "company_name", "position", "status",
		"start_date", "end_date", "employment_type", "notes",
		"salary_history", "offer_salary", "created_at", "updated_at",
	}).AddRow(
		"career-1", "user-1", "CompanyX", "Engineer", StatusLeft,
		"2019-04", "2021-03", "full_time", nil,
		[]byte(`[{"date":"2019-04","amount":4200000}]`),
		[]byte(`{"date":"2019-03","amount":4000000}`),
		now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM careers").
		WithArgs("user-1", "career-1").
		WillReturnRows(rows)

	career, err := repo.GetByID(context.Background(), "user-1", "career-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if career.EndDate != "2021-03" {
		t.Fatalf("end date = %q", career.EndDate)
	}
	if len(career.SalaryHistory) != 1 || career.SalaryHistory[0].Amount != 4200000 {
		t.Fatalf("salary history = %+v", career.SalaryHistory)
	}
	if career.OfferSalary == nil || career.OfferSalary.Amount != 4000000 {
		t.Fatalf("offer salary = %+v", career.OfferSalary)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRowReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE careers").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Career{
		ID:          "missing",
		UserID:      "user-1",
		CompanyName: "CompanyX",
		Position:    "Engineer",
		Status:      StatusCurrent,
		StartDate:   "2021-04",
	})
	if err != ErrNotFound {
		t.Fatalf("Update err = %v, want ErrNotFound", err)
	}
}
