package lead

import "context"

// Repository はリード永続化の抽象です。実体は外部コラボレーターが持ちます。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, l *Lead) (*Lead, error)
	Update(ctx context.Context, id string, l *Lead) (*Lead, error)
}
