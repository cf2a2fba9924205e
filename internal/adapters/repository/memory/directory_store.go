package memory

import (
	"context"
	"strings"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

// DirectoryStore はディレクトリのインメモリ実装です。
// 単一の操作スレッドから呼ばれる前提のため、ロックは持ちません。
// 参照系は常にディープコピーを返し、内部状態へのエイリアスを作りません。
type DirectoryStore struct {
	companies map[string]*directory.Company
	order     []string
	ids       directory.IDGenerator
}

// NewDirectoryStore は空の DirectoryStore を生成します。
func NewDirectoryStore(ids directory.IDGenerator) *DirectoryStore {
	if ids == nil {
		ids = directory.UUIDGenerator{}
	}
	return &DirectoryStore{
		companies: make(map[string]*directory.Company),
		ids:       ids,
	}
}

// AddCompany は新しい会社を作成し、登録順の末尾へ追加します。
func (s *DirectoryStore) AddCompany(_ context.Context, in directory.CreateCompanyInput) (*directory.Company, error) {
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

	s.companies[company.ID] = directory.CloneCompany(company)
	s.order = append(s.order, company.ID)

	return company, nil
}

// AddPerson は指定した会社に担当者を追加します。
// 会社が存在しない場合は ErrCompanyNotFound を返します。
func (s *DirectoryStore) AddPerson(_ context.Context, companyID string, in directory.CreatePersonInput) (*directory.Person, error) {
	company, ok := s.companies[companyID]
	if !ok {
		return nil, directory.ErrCompanyNotFound
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

	company.People = append(company.People, directory.ClonePerson(person))

	return person, nil
}

// FindCompany は ID で会社を取得します。
func (s *DirectoryStore) FindCompany(_ context.Context, id string) (*directory.Company, error) {
	if strings.TrimSpace(id) == "" {
		return nil, directory.ErrInvalidID
	}
	company, ok := s.companies[id]
	if !ok {
		return nil, directory.ErrCompanyNotFound
	}
	return directory.CloneCompany(company), nil
}

// FindCompanyByName は名前の完全一致で会社を取得します。
// 同名の会社が複数ある場合は登録順で最初の 1 件を返します。
func (s *DirectoryStore) FindCompanyByName(_ context.Context, name string) (*directory.Company, error) {
	for _, id := range s.order {
		if s.companies[id].Name == name {
			return directory.CloneCompany(s.companies[id]), nil
		}
	}
	return nil, directory.ErrCompanyNotFound
}

// ListCompanies は全会社を登録順で返します。
func (s *DirectoryStore) ListCompanies(_ context.Context) ([]*directory.Company, error) {
	companies := make([]*directory.Company, 0, len(s.order))
	for _, id := range s.order {
		companies = append(companies, directory.CloneCompany(s.companies[id]))
	}
	return companies, nil
}

// Put は既存エンティティをそのままの ID で登録します。
// 永続化ストアからの初期ロード用で、登録順は呼び出し順になります。
func (s *DirectoryStore) Put(company *directory.Company) {
	if company == nil || company.ID == "" {
		return
	}
	if _, ok := s.companies[company.ID]; !ok {
		s.order = append(s.order, company.ID)
	}
	s.companies[company.ID] = directory.CloneCompany(company)
}
