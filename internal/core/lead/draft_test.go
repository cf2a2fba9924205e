package lead

import (
	"errors"
	"testing"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

func draftCompany() *directory.Company {
	return &directory.Company{
		ID:   "company-1",
		Name: "Example Inc.",
		People: []*directory.Person{
			{ID: "person-1", Name: "Alice Carter", Designation: "CTO", Emails: []string{"alice@example.com"}},
			{ID: "person-2", Name: "Bob Allison", Designation: "Recruiter"},
			{ID: "person-3", Name: "Carol Smith", Designation: "HR Manager"},
		},
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	t.Parallel()

	d := NewDraft("")

	if d.JobNature != JobNaturePermanent {
		t.Fatalf("expected Permanent, got %s", d.JobNature)
	}
	if d.WorkplaceModel != WorkplaceOnsite {
		t.Fatalf("expected Onsite, got %s", d.WorkplaceModel)
	}
	if d.SalaryType != SalaryMonthly {
		t.Fatalf("expected Monthly, got %s", d.SalaryType)
	}
	if d.SalaryCurrency != "USD" {
		t.Fatalf("expected USD fallback, got %s", d.SalaryCurrency)
	}

	custom := NewDraft("EUR")
	if custom.SalaryCurrency != "EUR" {
		t.Fatalf("expected EUR, got %s", custom.SalaryCurrency)
	}
}

func TestDraft_SetCompany_ClearsAttached(t *testing.T) {
	t.Parallel()

	company := draftCompany()
	d := NewDraft("")
	d.SetCompany(company.ID)
	d.Attach(company, "person-1")
	d.Attach(company, "person-2")

	d.SetCompany("company-2")

	if d.CompanyID != "company-2" {
		t.Fatalf("expected company-2, got %s", d.CompanyID)
	}
	if len(d.Attached) != 0 {
		t.Fatalf("expected attached persons cleared, got %+v", d.Attached)
	}
}

func TestDraft_Attach_SnapshotsInOrder(t *testing.T) {
	t.Parallel()

	company := draftCompany()
	d := NewDraft("")
	d.SetCompany(company.ID)
	d.Attach(company, "person-2")
	d.Attach(company, "person-1")

	if len(d.Attached) != 2 {
		t.Fatalf("expected 2 attached, got %d", len(d.Attached))
	}
	if d.Attached[0].ID != "person-2" || d.Attached[1].ID != "person-1" {
		t.Fatalf("expected attach order preserved, got %+v", d.Attached)
	}
	if d.Attached[0].Name != "Bob Allison" || d.Attached[0].Designation != "Recruiter" {
		t.Fatalf("expected snapshot of person fields, got %+v", d.Attached[0])
	}

	primary := d.Primary()
	if primary == nil || primary.ID != "person-2" {
		t.Fatalf("expected first attached as primary, got %+v", primary)
	}
}

func TestDraft_Attach_NoOps(t *testing.T) {
	t.Parallel()

	company := draftCompany()
	d := NewDraft("")
	d.SetCompany(company.ID)

	d.Attach(nil, "person-1")
	if len(d.Attached) != 0 {
		t.Fatal("expected no-op for nil company")
	}

	other := &directory.Company{ID: "company-2"}
	d.Attach(other, "person-1")
	if len(d.Attached) != 0 {
		t.Fatal("expected no-op for mismatched company")
	}

	d.Attach(company, "missing")
	if len(d.Attached) != 0 {
		t.Fatal("expected no-op for unknown person")
	}

	d.Attach(company, "person-1")
	d.Attach(company, "person-1")
	if len(d.Attached) != 1 {
		t.Fatalf("expected duplicate attach ignored, got %d", len(d.Attached))
	}
}

func TestDraft_Detach(t *testing.T) {
	t.Parallel()

	company := draftCompany()
	d := NewDraft("")
	d.SetCompany(company.ID)
	d.Attach(company, "person-1")
	d.Attach(company, "person-2")

	d.Detach("missing")
	if len(d.Attached) != 2 {
		t.Fatalf("expected unknown detach ignored, got %d", len(d.Attached))
	}

	d.Detach("person-1")
	if len(d.Attached) != 1 {
		t.Fatalf("expected 1 attached after detach, got %d", len(d.Attached))
	}

	primary := d.Primary()
	if primary == nil || primary.ID != "person-2" {
		t.Fatalf("expected next person promoted to primary, got %+v", primary)
	}
}

func TestDraft_AttachDetachRoundTrip(t *testing.T) {
	t.Parallel()

	company := draftCompany()
	d := NewDraft("")
	d.SetCompany(company.ID)
	d.Attach(company, "person-1")

	before := append([]PersonRef(nil), d.Attached...)

	d.Attach(company, "person-3")
	d.Detach("person-3")

	if len(d.Attached) != len(before) {
		t.Fatalf("expected prior state restored, got %+v", d.Attached)
	}
	for i := range before {
		if d.Attached[i] != before[i] {
			t.Fatalf("expected entry %d unchanged, got %+v", i, d.Attached[i])
		}
	}
}

func TestDraft_SetField_StructuredFieldsRejected(t *testing.T) {
	t.Parallel()

	d := NewDraft("")

	if err := d.SetField(FieldCompany, "company-1"); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField for company, got %v", err)
	}
	if err := d.SetField(FieldPersons, "person-1"); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField for persons, got %v", err)
	}
}

func TestDraft_SetField_EnumValidation(t *testing.T) {
	t.Parallel()

	d := NewDraft("")

	if err := d.SetField(FieldJobNature, "Freelance"); !errors.Is(err, ErrInvalidFieldValue) {
		t.Fatalf("expected ErrInvalidFieldValue, got %v", err)
	}
	if d.JobNature != JobNaturePermanent {
		t.Fatalf("expected value unchanged after rejection, got %s", d.JobNature)
	}

	if err := d.SetField(FieldWorkplaceModel, string(WorkplaceRemote)); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if d.WorkplaceModel != WorkplaceRemote {
		t.Fatalf("expected Remote, got %s", d.WorkplaceModel)
	}
}

func TestDraft_SetField_ClearsRecordedError(t *testing.T) {
	t.Parallel()

	d := NewDraft("")
	d.RecordErrors(map[Field]string{
		FieldJobPostURL:   "Job Post URL is required",
		FieldSalaryAmount: "Please enter a valid amount",
	})

	if err := d.SetField(FieldJobPostURL, "https://example.com/job"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	errs := d.FieldErrors()
	if _, ok := errs[FieldJobPostURL]; ok {
		t.Fatal("expected jobPostUrl error cleared")
	}
	if _, ok := errs[FieldSalaryAmount]; !ok {
		t.Fatal("expected salaryAmount error kept")
	}
}

func TestDraft_FieldErrors_ReturnsCopy(t *testing.T) {
	t.Parallel()

	d := NewDraft("")
	d.RecordErrors(map[Field]string{FieldCompany: "Company is required"})

	errs := d.FieldErrors()
	delete(errs, FieldCompany)

	if _, ok := d.FieldErrors()[FieldCompany]; !ok {
		t.Fatal("expected internal error map unaffected by caller mutation")
	}
}
