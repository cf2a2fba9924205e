package lead

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ogurasousui/leaddesk/internal/core/directory"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Assembler は検証済みドラフトを永続化用のリードレコードへ射影します。
// ディレクトリにもドラフトにも書き込みは行いません。
type Assembler struct {
	store directory.Store
	clock Clock
}

// NewAssembler は Assembler を生成します。
func NewAssembler(store directory.Store, clock Clock) *Assembler {
	if clock == nil {
		clock = realClock{}
	}
	return &Assembler{store: store, clock: clock}
}

// Assemble はドラフトを検証し、通過した場合のみリードを組み立てます。
// 検証に失敗した場合は *ValidationError を返します。会社または主担当が
// ディレクトリから解決できない場合は ErrIntegrityFailed を返します。
// ドラフト側の不変条件が保たれていれば到達しないはずの防御チェックですが、
// ドラフトが開いている間にディレクトリが変更される余地があるため残しています。
func (a *Assembler) Assemble(ctx context.Context, d *Draft, policy URLPolicy) (*Lead, error) {
	if fields := Validate(d, policy); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	company, err := a.store.FindCompany(ctx, d.CompanyID)
	if err != nil {
		if errors.Is(err, directory.ErrCompanyNotFound) {
			return nil, fmt.Errorf("lead: company %s no longer exists: %w", d.CompanyID, ErrIntegrityFailed)
		}
		return nil, err
	}

	primary := d.Attached[0]
	person := company.FindPerson(primary.ID)
	if person == nil {
		return nil, fmt.Errorf("lead: person %s no longer exists in company %s: %w", primary.ID, company.ID, ErrIntegrityFailed)
	}

	source := d.Source
	if source == SourceCustom {
		source = d.CustomSource
	}

	var amount *float64
	if d.SalaryAmount != "" {
		parsed, err := parseSalaryAmount(d.SalaryAmount)
		if err != nil {
			return nil, &ValidationError{Fields: map[Field]string{FieldSalaryAmount: "Please enter a valid amount"}}
		}
		amount = &parsed
	}

	additional := make([]PersonRef, len(d.Attached)-1)
	copy(additional, d.Attached[1:])

	now := a.clock.Now()
	return &Lead{
		PersonName:        primary.Name,
		Email:             person.PrimaryEmail(),
		CompanyName:       company.Name,
		Location:          company.Location,
		Designation:       primary.Designation,
		Source:            source,
		JobPostURL:        d.JobPostURL,
		JobTitle:          d.JobTitle,
		JobNature:         d.JobNature,
		WorkplaceModel:    d.WorkplaceModel,
		OfficeLocation:    d.OfficeLocation,
		SalaryType:        d.SalaryType,
		SalaryCurrency:    d.SalaryCurrency,
		SalaryAmount:      amount,
		Description:       d.Description,
		Notes:             d.Notes,
		AdditionalPersons: additional,
		Status:            StatusNew,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
