package directory

import "github.com/google/uuid"

// UUIDGenerator は UUID v4 による IDGenerator の実装です。
type UUIDGenerator struct{}

// NewID は新しい UUID 文字列を返します。
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
