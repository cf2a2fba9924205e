package postgres

import (
	"context"
	"testing"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestDirectoryRepository_SaveCompany(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)
	website := "https://example.com"

	mock.ExpectExec("INSERT INTO companies").
		WithArgs("company-1", "Example Inc.", "Berlin", website, nil, nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SaveCompany(context.Background(), &directory.Company{
		ID:       "company-1",
		Name:     "Example Inc.",
		Location: "Berlin",
		Website:  &website,
	})
	if err != nil {
		t.Fatalf("SaveCompany returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDirectoryRepository_SavePerson(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)

	mock.ExpectExec("INSERT INTO persons").
		WithArgs("person-1", "company-1", "Alice Carter", "CTO", []string{"alice@example.com"}, []string(nil), nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SavePerson(context.Background(), "company-1", &directory.Person{
		ID:          "person-1",
		Name:        "Alice Carter",
		Designation: "CTO",
		Emails:      []string{"alice@example.com"},
	})
	if err != nil {
		t.Fatalf("SavePerson returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDirectoryRepository_LoadAll(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)

	companyRows := pgxmock.NewRows([]string{"id", "name", "location", "website", "linkedin_url", "industry"}).
		AddRow("company-1", "Example Inc.", "Berlin", nil, nil, nil).
		AddRow("company-2", "Globex", "Springfield", nil, nil, nil)

	personRows := pgxmock.NewRows([]string{"id", "company_id", "name", "designation", "emails", "phone_numbers", "linkedin_url"}).
		AddRow("person-1", "company-1", "Alice Carter", "CTO", []string{"alice@example.com"}, []string(nil), nil).
		AddRow("person-2", "company-1", "Bob Allison", "Recruiter", []string(nil), []string(nil), nil).
		AddRow("person-3", "company-2", "Carol Smith", "HR Manager", []string(nil), []string(nil), nil)

	mock.ExpectQuery("SELECT(.+)FROM companies").WillReturnRows(companyRows)
	mock.ExpectQuery("SELECT(.+)FROM persons").WillReturnRows(personRows)

	companies, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(companies))
	}
	if companies[0].ID != "company-1" || companies[1].ID != "company-2" {
		t.Fatalf("expected load order preserved, got %+v", companies)
	}
	if len(companies[0].People) != 2 {
		t.Fatalf("expected 2 persons under company-1, got %d", len(companies[0].People))
	}
	if companies[0].People[0].Name != "Alice Carter" || companies[0].People[1].Name != "Bob Allison" {
		t.Fatalf("expected person order preserved, got %+v", companies[0].People)
	}
	if len(companies[1].People) != 1 || companies[1].People[0].Name != "Carol Smith" {
		t.Fatalf("expected Carol under company-2, got %+v", companies[1].People)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
