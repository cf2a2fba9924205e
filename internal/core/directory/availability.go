package directory

import "strings"

// PersonOption は選択候補として表示する担当者エントリです。
type PersonOption struct {
	ID    string
	Label string
}

// CompanyOption は選択候補として表示する会社エントリです。
type CompanyOption struct {
	ID    string
	Label string
}

// AvailablePersons は会社の担当者のうち、まだ選択されておらず検索文字列に
// 一致するものを登録順のまま返します。検索は名前の部分一致で、
// 大文字小文字を区別しません。毎回全件を再計算し、過去の結果は保持しません。
func AvailablePersons(company *Company, attachedIDs map[string]struct{}, query string) []PersonOption {
	if company == nil {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(query))

	options := make([]PersonOption, 0, len(company.People))
	for _, p := range company.People {
		if _, attached := attachedIDs[p.ID]; attached {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		options = append(options, PersonOption{ID: p.ID, Label: p.Name})
	}

	return options
}

// FilterCompanies は会社一覧を名前の部分一致で絞り込み、元の並び順のまま返します。
func FilterCompanies(companies []*Company, query string) []CompanyOption {
	needle := strings.ToLower(strings.TrimSpace(query))

	options := make([]CompanyOption, 0, len(companies))
	for _, c := range companies {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		options = append(options, CompanyOption{ID: c.ID, Label: c.Name})
	}

	return options
}
