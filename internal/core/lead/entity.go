package lead

import "time"

// Status はリードの状態を表します。
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusClosed    Status = "Closed"
)

// JobNature は雇用形態を表します。
type JobNature string

const (
	JobNatureContract  JobNature = "Contract"
	JobNaturePermanent JobNature = "Permanent"
)

// WorkplaceModel は勤務形態を表します。
type WorkplaceModel string

const (
	WorkplaceRemote WorkplaceModel = "Remote"
	WorkplaceOnsite WorkplaceModel = "Onsite"
	WorkplaceHybrid WorkplaceModel = "Hybrid"
)

// SalaryType は給与の支払い単位を表します。
type SalaryType string

const (
	SalaryMonthly SalaryType = "Monthly"
	SalaryHourly  SalaryType = "Hourly"
)

// SourceCustom は求人ソースの自由入力を示す選択肢です。
const SourceCustom = "Custom"

// SourceOptions は選択可能な求人ソースの一覧です。
// ここに含まれないソース値を持つリードは Custom 扱いで復元されます。
var SourceOptions = []string{
	"LinkedIn",
	"Addusjobs",
	"Adzuna",
	"Angelist",
	"Bebee",
	"Career Builder",
	"GlassDoor",
	"Google Careers",
	"Google Jobs",
	SourceCustom,
}

// IsKnownSource は値が SourceOptions に含まれるかを返します。
func IsKnownSource(source string) bool {
	for _, opt := range SourceOptions {
		if opt == source {
			return true
		}
	}
	return false
}

// PersonRef は担当者のスナップショットです。ドラフトへの追加時点の
// 値のコピーで、以後のディレクトリ側の変更には追従しません。
type PersonRef struct {
	ID          string
	Name        string
	Designation string
}

// Lead は永続化されるリードレコードです。
// 先頭の担当者が主担当として展開され、残りは AdditionalPersons に入ります。
type Lead struct {
	ID                string
	PersonName        string
	Email             string
	CompanyName       string
	Location          string
	Designation       string
	Source            string
	JobPostURL        string
	JobTitle          string
	JobNature         JobNature
	WorkplaceModel    WorkplaceModel
	OfficeLocation    string
	SalaryType        SalaryType
	SalaryCurrency    string
	SalaryAmount      *float64
	Description       string
	Notes             string
	AdditionalPersons []PersonRef
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func isValidJobNature(v JobNature) bool {
	switch v {
	case JobNatureContract, JobNaturePermanent:
		return true
	default:
		return false
	}
}

func isValidWorkplaceModel(v WorkplaceModel) bool {
	switch v {
	case WorkplaceRemote, WorkplaceOnsite, WorkplaceHybrid:
		return true
	default:
		return false
	}
}

func isValidSalaryType(v SalaryType) bool {
	switch v {
	case SalaryMonthly, SalaryHourly:
		return true
	default:
		return false
	}
}
