package lead

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// URLPolicy は求人 URL の検証方針です。新規作成の導線は https スキームを
// 強制し、編集の導線は整形式であれば任意のスキームを受け付けます。
// 2 つの導線で方針が異なるのは意図的な仕様で、統一しません。
type URLPolicy string

const (
	URLPolicyStrictHTTPS URLPolicy = "strict_https"
	URLPolicyWellFormed  URLPolicy = "well_formed"
)

// 金額は整数部(3 桁区切り可)と、カンマまたはドットに続く 1〜2 桁の
// 小数部のみを受け付けます。通貨記号は付けられません。
var amountPattern = regexp.MustCompile(`^\d+(,\d{3})*([.,]\d{1,2})?$`)

// Validate はドラフトを検証し、項目ごとのメッセージを返します。
// 空のマップは検証通過を意味します。各ルールは独立で、途中で
// 打ち切らずに全ルールを評価します。ドラフトは変更しません。
func Validate(d *Draft, policy URLPolicy) map[Field]string {
	errs := make(map[Field]string)

	if d.CompanyID == "" {
		errs[FieldCompany] = "Company is required"
	}

	if len(d.Attached) == 0 {
		errs[FieldPersons] = "At least one person is required"
	}

	if d.JobPostURL == "" {
		errs[FieldJobPostURL] = "Job Post URL is required"
	} else {
		switch policy {
		case URLPolicyWellFormed:
			if !isWellFormedURL(d.JobPostURL) {
				errs[FieldJobPostURL] = "Please enter a valid URL"
			}
		default:
			if !strings.HasPrefix(d.JobPostURL, "https://") {
				errs[FieldJobPostURL] = "Please enter a valid URL starting with https://"
			}
		}
	}

	if d.Source == SourceCustom && d.CustomSource == "" {
		errs[FieldCustomSource] = "Custom source is required"
	}

	if d.SalaryAmount != "" && !amountPattern.MatchString(d.SalaryAmount) {
		errs[FieldSalaryAmount] = "Please enter a valid amount"
	}

	return errs
}

func isWellFormedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// parseSalaryAmount は検証済みの金額文字列を数値へ変換します。
// 3 桁区切りのカンマを除去し、小数区切りのカンマはドットへ正規化します。
func parseSalaryAmount(raw string) (float64, error) {
	if !amountPattern.MatchString(raw) {
		return 0, ErrInvalidFieldValue
	}

	sep := strings.LastIndexAny(raw, ".,")
	if sep >= 0 && len(raw)-sep-1 <= 2 {
		intPart := strings.ReplaceAll(raw[:sep], ",", "")
		raw = intPart + "." + raw[sep+1:]
	} else {
		raw = strings.ReplaceAll(raw, ",", "")
	}

	return strconv.ParseFloat(raw, 64)
}
