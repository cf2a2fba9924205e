package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
	pgdb "github.com/ogurasousui/leaddesk/internal/platform/db/postgres"
)

// DirectoryRepository は会社・担当者ディレクトリの PostgreSQL 永続化です。
// 読み取りはインメモリの DirectoryStore が担うため、ここでは起動時の
// 全件ロードと作成時の書き込みだけを提供します。
type DirectoryRepository struct {
	pool pgdb.Queryer
}

// NewDirectoryRepository は DirectoryRepository を生成します。
func NewDirectoryRepository(pool pgdb.Queryer) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// SaveCompany は会社を保存します。ID は呼び出し側で採番済みである前提です。
func (r *DirectoryRepository) SaveCompany(ctx context.Context, c *directory.Company) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO companies (id, name, location, website, linkedin_url, industry)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, c.ID, c.Name, c.Location, nullableString(c.Website), nullableString(c.LinkedIn), nullableString(c.Industry)); err != nil {
		return fmt.Errorf("postgres: save company: %w", err)
	}
	return nil
}

// SavePerson は担当者を会社に紐付けて保存します。
func (r *DirectoryRepository) SavePerson(ctx context.Context, companyID string, p *directory.Person) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO persons (id, company_id, name, designation, emails, phone_numbers, linkedin_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, p.ID, companyID, p.Name, p.Designation, p.Emails, p.PhoneNumbers, nullableString(p.LinkedIn)); err != nil {
		return fmt.Errorf("postgres: save person: %w", err)
	}
	return nil
}

// LoadAll は全会社を担当者込みで登録順に読み込みます。
func (r *DirectoryRepository) LoadAll(ctx context.Context) ([]*directory.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	rows, err := exec.Query(ctx, `
        SELECT id, name, location, website, linkedin_url, industry
          FROM companies
         ORDER BY seq
    `)
	if err != nil {
		return nil, fmt.Errorf("postgres: load companies: %w", err)
	}
	defer rows.Close()

	var companies []*directory.Company
	byID := make(map[string]*directory.Company)
	for rows.Next() {
		var (
			id, name, location          string
			website, linkedin, industry sql.NullString
		)
		if err := rows.Scan(&id, &name, &location, &website, &linkedin, &industry); err != nil {
			return nil, fmt.Errorf("postgres: scan company: %w", err)
		}
		company := &directory.Company{
			ID:       id,
			Name:     name,
			Location: location,
			Website:  stringPtr(website),
			LinkedIn: stringPtr(linkedin),
			Industry: stringPtr(industry),
			People:   []*directory.Person{},
		}
		companies = append(companies, company)
		byID[id] = company
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: load companies: %w", err)
	}

	personRows, err := exec.Query(ctx, `
        SELECT id, company_id, name, designation, emails, phone_numbers, linkedin_url
          FROM persons
         ORDER BY seq
    `)
	if err != nil {
		return nil, fmt.Errorf("postgres: load persons: %w", err)
	}
	defer personRows.Close()

	for personRows.Next() {
		var (
			id, companyID, name, designation string
			emails, phoneNumbers             []string
			linkedin                         sql.NullString
		)
		if err := personRows.Scan(&id, &companyID, &name, &designation, &emails, &phoneNumbers, &linkedin); err != nil {
			return nil, fmt.Errorf("postgres: scan person: %w", err)
		}
		company, ok := byID[companyID]
		if !ok {
			continue
		}
		company.People = append(company.People, &directory.Person{
			ID:           id,
			Name:         name,
			Designation:  designation,
			Emails:       emails,
			PhoneNumbers: phoneNumbers,
			LinkedIn:     stringPtr(linkedin),
		})
	}
	if err := personRows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: load persons: %w", err)
	}

	return companies, nil
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
