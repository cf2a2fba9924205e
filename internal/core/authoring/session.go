package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
	"github.com/ogurasousui/leaddesk/internal/core/lead"
)

// Session はリード作成・編集 1 回分の状態を束ね、UI 層へ公開する
// 操作面を提供します。UI 層はコレクションを直接触らず、必ずこの
// セッション経由でドラフトとディレクトリを操作します。
// 操作は単一のスレッドから呼ばれる前提です。
type Session struct {
	store directory.Store
	leads lead.Repository
	asm   *lead.Assembler

	draft    *lead.Draft
	editing  *lead.Lead
	policy   lead.URLPolicy
	currency string

	searchGen    uint64
	searchCancel context.CancelFunc
}

// NewSession は新規作成モードのセッションを生成します。
func NewSession(store directory.Store, leads lead.Repository, clock lead.Clock, currency string) *Session {
	return &Session{
		store:    store,
		leads:    leads,
		asm:      lead.NewAssembler(store, clock),
		draft:    lead.NewDraft(currency),
		policy:   lead.URLPolicyStrictHTTPS,
		currency: currency,
	}
}

// Draft は現在のドラフトを返します。
func (s *Session) Draft() *lead.Draft {
	return s.draft
}

// Editing は編集対象のリードを返します。新規作成モードでは nil です。
func (s *Session) Editing() *lead.Lead {
	return s.editing
}

// OnCompanySelected は会社を選択し、選択直後の担当者候補
// (選択済みが空なので全担当者)を返します。
func (s *Session) OnCompanySelected(ctx context.Context, companyID string) ([]directory.PersonOption, error) {
	company, err := s.store.FindCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	s.draft.SetCompany(company.ID)

	return directory.AvailablePersons(company, s.draft.AttachedIDs(), ""), nil
}

// OnCompanySearch は会社一覧を名前で絞り込みます。
func (s *Session) OnCompanySearch(ctx context.Context, query string) ([]directory.CompanyOption, error) {
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	return directory.FilterCompanies(companies, query), nil
}

// SearchResult は担当者検索 1 回分の結果です。発行時点の世代を持ち、
// より新しい検索が発行されると適用できなくなります。
type SearchResult struct {
	gen     uint64
	Options []directory.PersonOption
}

// OnSearchQuery は担当者候補の検索を発行します。直前に発行した検索は
// この時点で打ち切られます(最後に発行した検索だけが勝ちます)。
// 会社未選択の間は空の候補を返します。
func (s *Session) OnSearchQuery(ctx context.Context, query string) (*SearchResult, error) {
	if s.searchCancel != nil {
		s.searchCancel()
	}
	searchCtx, cancel := context.WithCancel(ctx)
	s.searchCancel = cancel
	s.searchGen++
	gen := s.searchGen

	options, err := s.availablePersons(searchCtx, query)
	if err != nil {
		return nil, err
	}

	return &SearchResult{gen: gen, Options: options}, nil
}

// ApplySearch は検索結果を適用します。結果が発行後に新しい検索で
// 追い越されていた場合は破棄し、false を返します。
func (s *Session) ApplySearch(r *SearchResult) ([]directory.PersonOption, bool) {
	if r == nil || r.gen != s.searchGen {
		return nil, false
	}
	return r.Options, true
}

func (s *Session) availablePersons(ctx context.Context, query string) ([]directory.PersonOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.draft.CompanyID == "" {
		return []directory.PersonOption{}, nil
	}

	company, err := s.store.FindCompany(ctx, s.draft.CompanyID)
	if err != nil {
		return nil, err
	}

	return directory.AvailablePersons(company, s.draft.AttachedIDs(), query), nil
}

// OnAttach は担当者をドラフトへ追加します。担当者が現在の会社で
// 解決できない場合と追加済みの場合は何もしません。
func (s *Session) OnAttach(ctx context.Context, personID string) error {
	if s.draft.CompanyID == "" {
		return nil
	}

	company, err := s.store.FindCompany(ctx, s.draft.CompanyID)
	if err != nil {
		if errors.Is(err, directory.ErrCompanyNotFound) {
			return nil
		}
		return err
	}

	s.draft.Attach(company, personID)
	return nil
}

// OnDetach は担当者をドラフトから外します。存在しない ID は無視します。
func (s *Session) OnDetach(personID string) {
	s.draft.Detach(personID)
}

// OnFieldChange はスカラー項目を変更します。
func (s *Session) OnFieldChange(field lead.Field, value string) error {
	return s.draft.SetField(field, value)
}

// OnCreateCompany は会社をインライン作成し、そのままドラフトの
// 選択会社に切り替えます。
func (s *Session) OnCreateCompany(ctx context.Context, in directory.CreateCompanyInput) (*directory.Company, error) {
	company, err := s.store.AddCompany(ctx, in)
	if err != nil {
		return nil, err
	}

	s.draft.SetCompany(company.ID)
	return company, nil
}

// OnCreatePerson は選択中の会社へ担当者をインライン作成します。
func (s *Session) OnCreatePerson(ctx context.Context, companyID string, in directory.CreatePersonInput) (*directory.Person, error) {
	return s.store.AddPerson(ctx, companyID, in)
}

// OnSubmit はドラフトを検証・組み立てし、リポジトリへ保存します。
// 検証エラーはドラフトへ記録した上で *lead.ValidationError として返します。
// 保存まで成功した場合、ドラフトは破棄され新規作成モードへ戻ります。
// 途中で失敗した場合、リポジトリには一切書き込みません。
func (s *Session) OnSubmit(ctx context.Context) (*lead.Lead, error) {
	assembled, err := s.asm.Assemble(ctx, s.draft, s.policy)
	if err != nil {
		var ve *lead.ValidationError
		if errors.As(err, &ve) {
			s.draft.RecordErrors(ve.Fields)
		}
		return nil, err
	}

	var saved *lead.Lead
	if s.editing != nil {
		assembled.ID = s.editing.ID
		assembled.CreatedAt = s.editing.CreatedAt
		assembled.Status = s.editing.Status
		saved, err = s.leads.Update(ctx, s.editing.ID, assembled)
	} else {
		saved, err = s.leads.Create(ctx, assembled)
	}
	if err != nil {
		return nil, fmt.Errorf("authoring: save lead: %w", err)
	}

	s.reset()
	return saved, nil
}

// OnLoadForEdit は保存済みリードを読み込み、編集用ドラフトへ復元します。
// リードまたはその会社が見つからない場合はエラーを返し、
// セッションの状態は変更しません。
func (s *Session) OnLoadForEdit(ctx context.Context, leadID string) (*lead.Draft, error) {
	if strings.TrimSpace(leadID) == "" {
		return nil, lead.ErrInvalidID
	}

	l, err := s.leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	draft, err := lead.Reconstruct(ctx, l, s.store)
	if err != nil {
		return nil, err
	}

	s.draft = draft
	s.editing = l
	s.policy = lead.URLPolicyWellFormed
	return draft, nil
}

// OnCancel は編集を中断し、ドラフトを破棄して新規作成モードへ戻します。
func (s *Session) OnCancel() {
	s.reset()
}

func (s *Session) reset() {
	if s.searchCancel != nil {
		s.searchCancel()
		s.searchCancel = nil
	}
	s.draft = lead.NewDraft(s.currency)
	s.editing = nil
	s.policy = lead.URLPolicyStrictHTTPS
	s.searchGen = 0
}
