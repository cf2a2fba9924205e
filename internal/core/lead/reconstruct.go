package lead

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

// Reconstruct は永続化済みリードから編集用のドラフトを復元します。
// 会社は名前の完全一致で解決し、見つからない場合は
// directory.ErrCompanyNotFound を返します。担当者も名前で解決するため、
// 同名の担当者がいる場合は登録順で最初の 1 件に割り当てられます。
// 解決できなかった担当者名は黙って読み飛ばします。
func Reconstruct(ctx context.Context, l *Lead, store directory.Store) (*Draft, error) {
	company, err := store.FindCompanyByName(ctx, l.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("lead: reconstruct %q: %w", l.CompanyName, err)
	}

	d := NewDraft(l.SalaryCurrency)
	d.SetCompany(company.ID)

	if p := company.FindPersonByName(l.PersonName); p != nil {
		d.Attach(company, p.ID)
	}
	for _, ref := range l.AdditionalPersons {
		if p := company.FindPersonByName(ref.Name); p != nil {
			d.Attach(company, p.ID)
		}
	}

	if IsKnownSource(l.Source) {
		d.Source = l.Source
		d.CustomSource = ""
	} else {
		d.Source = SourceCustom
		d.CustomSource = l.Source
	}

	d.JobTitle = l.JobTitle
	d.JobPostURL = l.JobPostURL
	d.OfficeLocation = l.OfficeLocation
	d.Description = l.Description
	d.Notes = l.Notes

	if isValidJobNature(l.JobNature) {
		d.JobNature = l.JobNature
	}
	if isValidWorkplaceModel(l.WorkplaceModel) {
		d.WorkplaceModel = l.WorkplaceModel
	}
	if isValidSalaryType(l.SalaryType) {
		d.SalaryType = l.SalaryType
	}

	if l.SalaryAmount != nil {
		d.SalaryAmount = strconv.FormatFloat(*l.SalaryAmount, 'f', -1, 64)
	}

	return d, nil
}
