package lead

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeStore struct {
	companies map[string]*directory.Company
	order     []string
	seq       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{companies: make(map[string]*directory.Company)}
}

func (s *fakeStore) AddCompany(_ context.Context, in directory.CreateCompanyInput) (*directory.Company, error) {
	s.seq++
	company := &directory.Company{
		ID:       fmt.Sprintf("company-%d", s.seq),
		Name:     in.Name,
		Location: in.Location,
		Website:  in.Website,
		LinkedIn: in.LinkedIn,
		Industry: in.Industry,
	}
	s.companies[company.ID] = company
	s.order = append(s.order, company.ID)
	return directory.CloneCompany(company), nil
}

func (s *fakeStore) AddPerson(_ context.Context, companyID string, in directory.CreatePersonInput) (*directory.Person, error) {
	company, ok := s.companies[companyID]
	if !ok {
		return nil, directory.ErrCompanyNotFound
	}
	s.seq++
	person := &directory.Person{
		ID:           fmt.Sprintf("person-%d", s.seq),
		Name:         in.Name,
		Designation:  in.Designation,
		Emails:       append([]string(nil), in.Emails...),
		PhoneNumbers: append([]string(nil), in.PhoneNumbers...),
		LinkedIn:     in.LinkedIn,
	}
	company.People = append(company.People, person)
	return directory.ClonePerson(person), nil
}

func (s *fakeStore) FindCompany(_ context.Context, id string) (*directory.Company, error) {
	company, ok := s.companies[id]
	if !ok {
		return nil, directory.ErrCompanyNotFound
	}
	return directory.CloneCompany(company), nil
}

func (s *fakeStore) FindCompanyByName(_ context.Context, name string) (*directory.Company, error) {
	for _, id := range s.order {
		if s.companies[id].Name == name {
			return directory.CloneCompany(s.companies[id]), nil
		}
	}
	return nil, directory.ErrCompanyNotFound
}

func (s *fakeStore) ListCompanies(_ context.Context) ([]*directory.Company, error) {
	companies := make([]*directory.Company, 0, len(s.order))
	for _, id := range s.order {
		companies = append(companies, directory.CloneCompany(s.companies[id]))
	}
	return companies, nil
}

func (s *fakeStore) removeCompany(id string) {
	delete(s.companies, id)
}

func (s *fakeStore) removePerson(companyID, personID string) {
	company, ok := s.companies[companyID]
	if !ok {
		return
	}
	for i, p := range company.People {
		if p.ID == personID {
			company.People = append(company.People[:i], company.People[i+1:]...)
			return
		}
	}
}

func seedStore(t *testing.T, store *fakeStore) (*directory.Company, []*directory.Person) {
	t.Helper()

	company, err := store.AddCompany(context.Background(), directory.CreateCompanyInput{
		Name:     "Example Inc.",
		Location: "Berlin",
	})
	if err != nil {
		t.Fatalf("AddCompany error: %v", err)
	}

	inputs := []directory.CreatePersonInput{
		{Name: "Alice Carter", Designation: "CTO", Emails: []string{"alice@example.com"}},
		{Name: "Bob Allison", Designation: "Recruiter"},
		{Name: "Carol Smith", Designation: "HR Manager"},
	}

	persons := make([]*directory.Person, 0, len(inputs))
	for _, in := range inputs {
		p, err := store.AddPerson(context.Background(), company.ID, in)
		if err != nil {
			t.Fatalf("AddPerson error: %v", err)
		}
		persons = append(persons, p)
	}

	return company, persons
}

func seededDraft(t *testing.T, store *fakeStore) (*Draft, *directory.Company, []*directory.Person) {
	t.Helper()

	company, persons := seedStore(t, store)
	loaded, err := store.FindCompany(context.Background(), company.ID)
	if err != nil {
		t.Fatalf("FindCompany error: %v", err)
	}

	d := NewDraft("")
	d.SetCompany(loaded.ID)
	for _, p := range persons {
		d.Attach(loaded, p.ID)
	}
	d.Source = "LinkedIn"
	d.JobTitle = "Senior Backend Engineer"
	d.JobPostURL = "https://example.com/jobs/1"
	d.SalaryAmount = "5,000.50"

	return d, company, persons
}

func TestAssembler_Assemble_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	d, company, persons := seededDraft(t, store)

	clk := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	asm := NewAssembler(store, clk)

	lead, err := asm.Assemble(context.Background(), d, URLPolicyStrictHTTPS)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if lead.PersonName != persons[0].Name || lead.Designation != persons[0].Designation {
		t.Fatalf("expected primary person expanded, got %+v", lead)
	}
	if lead.Email != "alice@example.com" {
		t.Fatalf("expected email resolved from directory, got %q", lead.Email)
	}
	if lead.CompanyName != company.Name || lead.Location != company.Location {
		t.Fatalf("expected company expanded, got %+v", lead)
	}

	if len(lead.AdditionalPersons) != 2 {
		t.Fatalf("expected 2 additional persons, got %d", len(lead.AdditionalPersons))
	}
	if lead.AdditionalPersons[0].Name != persons[1].Name || lead.AdditionalPersons[1].Name != persons[2].Name {
		t.Fatalf("expected attach order preserved, got %+v", lead.AdditionalPersons)
	}

	if lead.SalaryAmount == nil || *lead.SalaryAmount != 5000.5 {
		t.Fatalf("expected salary 5000.5, got %+v", lead.SalaryAmount)
	}

	if lead.Status != StatusNew {
		t.Fatalf("expected StatusNew, got %s", lead.Status)
	}
	if !lead.CreatedAt.Equal(clk.now) || !lead.UpdatedAt.Equal(clk.now) {
		t.Fatalf("expected timestamps from clock, got %v and %v", lead.CreatedAt, lead.UpdatedAt)
	}
}

func TestAssembler_Assemble_ResolvesCustomSource(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	d, _, _ := seededDraft(t, store)
	d.Source = SourceCustom
	d.CustomSource = "Internal referral"

	asm := NewAssembler(store, &stubClock{now: time.Now()})

	lead, err := asm.Assemble(context.Background(), d, URLPolicyStrictHTTPS)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if lead.Source != "Internal referral" {
		t.Fatalf("expected custom text as source, got %q", lead.Source)
	}
}

func TestAssembler_Assemble_EmptySalary(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	d, _, _ := seededDraft(t, store)
	d.SalaryAmount = ""

	asm := NewAssembler(store, &stubClock{now: time.Now()})

	lead, err := asm.Assemble(context.Background(), d, URLPolicyStrictHTTPS)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if lead.SalaryAmount != nil {
		t.Fatalf("expected nil salary amount, got %v", *lead.SalaryAmount)
	}
}

func TestAssembler_Assemble_ValidationError(t *testing.T) {
	t.Parallel()

	asm := NewAssembler(newFakeStore(), &stubClock{now: time.Now()})

	_, err := asm.Assemble(context.Background(), NewDraft(""), URLPolicyStrictHTTPS)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Fields[FieldCompany] != "Company is required" {
		t.Fatalf("unexpected validation fields: %+v", ve.Fields)
	}
}

func TestAssembler_Assemble_CompanyRemoved(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	d, company, _ := seededDraft(t, store)
	store.removeCompany(company.ID)

	asm := NewAssembler(store, &stubClock{now: time.Now()})

	if _, err := asm.Assemble(context.Background(), d, URLPolicyStrictHTTPS); !errors.Is(err, ErrIntegrityFailed) {
		t.Fatalf("expected ErrIntegrityFailed, got %v", err)
	}
}

func TestAssembler_Assemble_PrimaryPersonRemoved(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	d, company, persons := seededDraft(t, store)
	store.removePerson(company.ID, persons[0].ID)

	asm := NewAssembler(store, &stubClock{now: time.Now()})

	if _, err := asm.Assemble(context.Background(), d, URLPolicyStrictHTTPS); !errors.Is(err, ErrIntegrityFailed) {
		t.Fatalf("expected ErrIntegrityFailed, got %v", err)
	}
}
