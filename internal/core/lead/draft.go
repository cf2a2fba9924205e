package lead

import (
	"strings"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

// Draft は作成・編集中のリードの一時状態です。送信または破棄されるまでの
// 間だけ存在し、1 つの編集セッションにつき 1 つだけ生成されます。
// Attached の各要素は追加時点のスナップショットで、先頭が主担当です。
type Draft struct {
	CompanyID      string
	Attached       []PersonRef
	JobTitle       string
	JobPostURL     string
	Source         string
	CustomSource   string
	JobNature      JobNature
	WorkplaceModel WorkplaceModel
	OfficeLocation string
	SalaryType     SalaryType
	SalaryCurrency string
	SalaryAmount   string
	Description    string
	Notes          string

	fieldErrors map[Field]string
}

// NewDraft は初期値入りの空ドラフトを生成します。
// currency が空の場合は USD を既定とします。
func NewDraft(currency string) *Draft {
	if strings.TrimSpace(currency) == "" {
		currency = "USD"
	}
	return &Draft{
		JobNature:      JobNaturePermanent,
		WorkplaceModel: WorkplaceOnsite,
		SalaryType:     SalaryMonthly,
		SalaryCurrency: currency,
		fieldErrors:    make(map[Field]string),
	}
}

// SetCompany は会社を選択し直し、選択済み担当者を必ず空に戻します。
// 別会社の担当者がドラフトに残ることはありません。
func (d *Draft) SetCompany(companyID string) {
	d.clearFieldError(FieldCompany)
	d.clearFieldError(FieldPersons)
	d.CompanyID = companyID
	d.Attached = nil
}

// Attach は現在の会社から担当者を解決し、スナップショットを末尾へ追加します。
// 担当者が解決できない場合と追加済みの場合は何もしません(エラーではありません)。
func (d *Draft) Attach(company *directory.Company, personID string) {
	if company == nil || company.ID != d.CompanyID {
		return
	}

	person := company.FindPerson(personID)
	if person == nil {
		return
	}

	for _, ref := range d.Attached {
		if ref.ID == person.ID {
			return
		}
	}

	d.clearFieldError(FieldPersons)
	d.Attached = append(d.Attached, PersonRef{
		ID:          person.ID,
		Name:        person.Name,
		Designation: person.Designation,
	})
}

// Detach は選択済み担当者から該当 ID の要素を取り除きます。
// 先頭を外した場合は次の要素が暗黙に主担当へ繰り上がります。
func (d *Draft) Detach(personID string) {
	for i, ref := range d.Attached {
		if ref.ID == personID {
			d.Attached = append(d.Attached[:i], d.Attached[i+1:]...)
			return
		}
	}
}

// Primary は主担当(先頭要素)を返します。未選択の場合は nil です。
func (d *Draft) Primary() *PersonRef {
	if len(d.Attached) == 0 {
		return nil
	}
	ref := d.Attached[0]
	return &ref
}

// AttachedIDs は選択済み担当者の ID 集合を返します。
func (d *Draft) AttachedIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(d.Attached))
	for _, ref := range d.Attached {
		ids[ref.ID] = struct{}{}
	}
	return ids
}

// SetField はスカラー項目へ値を代入します。代入と同時にその項目へ
// 記録されていた検証エラーを消去します。company と persons は
// SetField では変更できず ErrInvalidField を返します。
func (d *Draft) SetField(field Field, value string) error {
	if !field.assignable() {
		return ErrInvalidField
	}

	d.clearFieldError(field)

	switch field {
	case FieldJobTitle:
		d.JobTitle = value
	case FieldJobPostURL:
		d.JobPostURL = value
	case FieldSource:
		d.Source = value
	case FieldCustomSource:
		d.CustomSource = value
	case FieldJobNature:
		if !isValidJobNature(JobNature(value)) {
			return ErrInvalidFieldValue
		}
		d.JobNature = JobNature(value)
	case FieldWorkplaceModel:
		if !isValidWorkplaceModel(WorkplaceModel(value)) {
			return ErrInvalidFieldValue
		}
		d.WorkplaceModel = WorkplaceModel(value)
	case FieldSalaryType:
		if !isValidSalaryType(SalaryType(value)) {
			return ErrInvalidFieldValue
		}
		d.SalaryType = SalaryType(value)
	case FieldOfficeLocation:
		d.OfficeLocation = value
	case FieldSalaryCurrency:
		d.SalaryCurrency = value
	case FieldSalaryAmount:
		d.SalaryAmount = value
	case FieldDescription:
		d.Description = value
	case FieldNotes:
		d.Notes = value
	}

	return nil
}

// RecordErrors は検証結果をドラフトへ記録します。
func (d *Draft) RecordErrors(fields map[Field]string) {
	d.fieldErrors = make(map[Field]string, len(fields))
	for f, msg := range fields {
		d.fieldErrors[f] = msg
	}
}

// FieldErrors は記録済みの検証エラーのコピーを返します。
func (d *Draft) FieldErrors() map[Field]string {
	errs := make(map[Field]string, len(d.fieldErrors))
	for f, msg := range d.fieldErrors {
		errs[f] = msg
	}
	return errs
}

func (d *Draft) clearFieldError(field Field) {
	if d.fieldErrors == nil {
		d.fieldErrors = make(map[Field]string)
		return
	}
	delete(d.fieldErrors, field)
}
