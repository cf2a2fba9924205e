package writethrough

import (
	"context"
	"strings"

	"github.com/ogurasousui/leaddesk/internal/adapters/repository/memory"
	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

// Persister はディレクトリの書き込み先です。
type Persister interface {
	SaveCompany(ctx context.Context, c *directory.Company) error
	SavePerson(ctx context.Context, companyID string, p *directory.Person) error
}

// TxRunner は書き込みをトランザクション内で実行します。
type TxRunner interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// DirectoryStore は読み取りをインメモリキャッシュから、書き込みを
// 永続化ストアとキャッシュの両方へ反映するディレクトリ実装です。
// 永続化に失敗した場合はキャッシュへ反映しません。
type DirectoryStore struct {
	cache *memory.DirectoryStore
	repo  Persister
	tx    TxRunner
	ids   directory.IDGenerator
}

// NewDirectoryStore は DirectoryStore を生成します。
func NewDirectoryStore(cache *memory.DirectoryStore, repo Persister, tx TxRunner, ids directory.IDGenerator) *DirectoryStore {
	if ids == nil {
		ids = directory.UUIDGenerator{}
	}
	return &DirectoryStore{cache: cache, repo: repo, tx: tx, ids: ids}
}

// AddCompany は会社を永続化し、成功した場合のみキャッシュへ反映します。
func (s *DirectoryStore) AddCompany(ctx context.Context, in directory.CreateCompanyInput) (*directory.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, directory.ErrInvalidCompanyName
	}

	company := &directory.Company{
		ID:       s.ids.NewID(),
		Name:     name,
		Location: strings.TrimSpace(in.Location),
		Website:  in.Website,
		LinkedIn: in.LinkedIn,
		Industry: in.Industry,
		People:   []*directory.Person{},
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		return s.repo.SaveCompany(ctx, company)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Put(company)
	return directory.CloneCompany(company), nil
}

// AddPerson は担当者を永続化し、成功した場合のみキャッシュへ反映します。
func (s *DirectoryStore) AddPerson(ctx context.Context, companyID string, in directory.CreatePersonInput) (*directory.Person, error) {
	company, err := s.cache.FindCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, directory.ErrInvalidPersonName
	}

	person := &directory.Person{
		ID:           s.ids.NewID(),
		Name:         name,
		Designation:  strings.TrimSpace(in.Designation),
		Emails:       append([]string(nil), in.Emails...),
		PhoneNumbers: append([]string(nil), in.PhoneNumbers...),
		LinkedIn:     in.LinkedIn,
	}

	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		return s.repo.SavePerson(ctx, companyID, person)
	})
	if err != nil {
		return nil, err
	}

	company.People = append(company.People, person)
	s.cache.Put(company)
	return directory.ClonePerson(person), nil
}

// FindCompany は ID で会社をキャッシュから取得します。
func (s *DirectoryStore) FindCompany(ctx context.Context, id string) (*directory.Company, error) {
	return s.cache.FindCompany(ctx, id)
}

// FindCompanyByName は名前の完全一致で会社をキャッシュから取得します。
func (s *DirectoryStore) FindCompanyByName(ctx context.Context, name string) (*directory.Company, error) {
	return s.cache.FindCompanyByName(ctx, name)
}

// ListCompanies は全会社を登録順でキャッシュから返します。
func (s *DirectoryStore) ListCompanies(ctx context.Context) ([]*directory.Company, error) {
	return s.cache.ListCompanies(ctx)
}
