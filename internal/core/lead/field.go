package lead

// Field はドラフトおよび検証エラーの項目識別子です。
// 自由な文字列キーではなく閉じた集合として扱い、未知の項目参照を
// コンパイル時に排除します。
type Field string

const (
	FieldCompany        Field = "company"
	FieldPersons        Field = "persons"
	FieldJobTitle       Field = "jobTitle"
	FieldJobPostURL     Field = "jobPostUrl"
	FieldSource         Field = "source"
	FieldCustomSource   Field = "customSource"
	FieldJobNature      Field = "jobNature"
	FieldWorkplaceModel Field = "workplaceModel"
	FieldOfficeLocation Field = "officeLocation"
	FieldSalaryType     Field = "salaryType"
	FieldSalaryCurrency Field = "salaryCurrency"
	FieldSalaryAmount   Field = "salaryAmount"
	FieldDescription    Field = "description"
	FieldNotes          Field = "notes"
)

// assignable は SetField で代入できる項目かを返します。
// company と persons は構造を持つため専用の操作でのみ変更します。
func (f Field) assignable() bool {
	switch f {
	case FieldJobTitle, FieldJobPostURL, FieldSource, FieldCustomSource,
		FieldJobNature, FieldWorkplaceModel, FieldOfficeLocation,
		FieldSalaryType, FieldSalaryCurrency, FieldSalaryAmount,
		FieldDescription, FieldNotes:
		return true
	default:
		return false
	}
}
