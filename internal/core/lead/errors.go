package lead

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrLeadNotFound      = errors.New("lead: not found")
	ErrInvalidID         = errors.New("lead: invalid id")
	ErrInvalidField      = errors.New("lead: field is not assignable")
	ErrInvalidFieldValue = errors.New("lead: invalid field value")
	// ErrIntegrityFailed はドラフトが参照する会社・担当者がディレクトリ側で
	// 失われていた場合の防御チェックで返却されます。
	ErrIntegrityFailed = errors.New("lead: directory integrity check failed")
)

// ValidationError は項目単位の検証エラーの集合です。
// 呼び出し側は Fields を使って全項目のメッセージを一度に表示できます。
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return fmt.Sprintf("lead: validation failed: %v", names)
}
