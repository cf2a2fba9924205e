package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/leaddesk/internal/core/lead"
	pgdb "github.com/ogurasousui/leaddesk/internal/platform/db/postgres"
)

const leadColumns = `id, person_name, email, company_name, location, designation, source,
               job_post_url, job_title, job_nature, workplace_model, office_location,
               salary_type, salary_currency, salary_amount, description, notes,
               additional_persons, status, created_at, updated_at`

// LeadRepository は PostgreSQL を利用したリード永続化の実装です。
type LeadRepository struct {
	pool pgdb.Queryer
}

// NewLeadRepository は LeadRepository を生成します。
func NewLeadRepository(pool pgdb.Queryer) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// FindByID は ID でリードを取得します。
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+leadColumns+`
          FROM leads
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanLead(row)
}

// Create はリードを新規作成します。ID はデータベース側で採番されます。
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) (*lead.Lead, error) {
	persons, err := encodePersonRefs(l.AdditionalPersons)
	if err != nil {
		return nil, err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO leads (person_name, email, company_name, location, designation, source,
                           job_post_url, job_title, job_nature, workplace_model, office_location,
                           salary_type, salary_currency, salary_amount, description, notes,
                           additional_persons, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
        RETURNING `+leadColumns+`
    `, l.PersonName, l.Email, l.CompanyName, l.Location, l.Designation, l.Source,
		l.JobPostURL, l.JobTitle, string(l.JobNature), string(l.WorkplaceModel), l.OfficeLocation,
		string(l.SalaryType), l.SalaryCurrency, nullableFloat(l.SalaryAmount), l.Description, l.Notes,
		persons, string(l.Status), l.CreatedAt, l.UpdatedAt)

	return scanLead(row)
}

// Update は既存リードを全項目置き換えで更新します。
func (r *LeadRepository) Update(ctx context.Context, id string, l *lead.Lead) (*lead.Lead, error) {
	persons, err := encodePersonRefs(l.AdditionalPersons)
	if err != nil {
		return nil, err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE leads
           SET person_name = $1,
               email = $2,
               company_name = $3,
               location = $4,
               designation = $5,
               source = $6,
               job_post_url = $7,
               job_title = $8,
               job_nature = $9,
               workplace_model = $10,
               office_location = $11,
               salary_type = $12,
               salary_currency = $13,
               salary_amount = $14,
               description = $15,
               notes = $16,
               additional_persons = $17,
               status = $18,
               updated_at = $19
         WHERE id = $20
        RETURNING `+leadColumns+`
    `, l.PersonName, l.Email, l.CompanyName, l.Location, l.Designation, l.Source,
		l.JobPostURL, l.JobTitle, string(l.JobNature), string(l.WorkplaceModel), l.OfficeLocation,
		string(l.SalaryType), l.SalaryCurrency, nullableFloat(l.SalaryAmount), l.Description, l.Notes,
		persons, string(l.Status), l.UpdatedAt, id)

	return scanLead(row)
}

func scanLead(row pgx.Row) (*lead.Lead, error) {
	var (
		id, personName, email, companyName, location, designation string
		source, jobPostURL, jobTitle, jobNature, workplaceModel   string
		officeLocation, salaryType, salaryCurrency                string
		salaryAmount                                              sql.NullFloat64
		description, notes                                        string
		additionalPersons                                         []byte
		status                                                    string
		createdAt, updatedAt                                      time.Time
	)

	if err := row.Scan(&id, &personName, &email, &companyName, &location, &designation,
		&source, &jobPostURL, &jobTitle, &jobNature, &workplaceModel, &officeLocation,
		&salaryType, &salaryCurrency, &salaryAmount, &description, &notes,
		&additionalPersons, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, lead.ErrLeadNotFound
		}
		return nil, err
	}

	persons, err := decodePersonRefs(additionalPersons)
	if err != nil {
		return nil, err
	}

	var amount *float64
	if salaryAmount.Valid {
		v := salaryAmount.Float64
		amount = &v
	}

	return &lead.Lead{
		ID:                id,
		PersonName:        personName,
		Email:             email,
		CompanyName:       companyName,
		Location:          location,
		Designation:       designation,
		Source:            source,
		JobPostURL:        jobPostURL,
		JobTitle:          jobTitle,
		JobNature:         lead.JobNature(jobNature),
		WorkplaceModel:    lead.WorkplaceModel(workplaceModel),
		OfficeLocation:    officeLocation,
		SalaryType:        lead.SalaryType(salaryType),
		SalaryCurrency:    salaryCurrency,
		SalaryAmount:      amount,
		Description:       description,
		Notes:             notes,
		AdditionalPersons: persons,
		Status:            lead.Status(status),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

type personRefRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

func encodePersonRefs(refs []lead.PersonRef) ([]byte, error) {
	records := make([]personRefRecord, 0, len(refs))
	for _, ref := range refs {
		records = append(records, personRefRecord{ID: ref.ID, Name: ref.Name, Designation: ref.Designation})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("postgres: encode additional persons: %w", err)
	}
	return b, nil
}

func decodePersonRefs(raw []byte) ([]lead.PersonRef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []personRefRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("postgres: decode additional persons: %w", err)
	}
	refs := make([]lead.PersonRef, 0, len(records))
	for _, rec := range records {
		refs = append(refs, lead.PersonRef{ID: rec.ID, Name: rec.Name, Designation: rec.Designation})
	}
	return refs, nil
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
