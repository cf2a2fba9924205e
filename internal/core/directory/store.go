package directory

import "context"

// Store は会社・担当者ディレクトリの操作を提供するインターフェースです。
// 削除や会社間の担当者移動はリード作成の範囲外のため提供しません。
type Store interface {
	AddCompany(ctx context.Context, in CreateCompanyInput) (*Company, error)
	AddPerson(ctx context.Context, companyID string, in CreatePersonInput) (*Person, error)
	FindCompany(ctx context.Context, id string) (*Company, error)
	FindCompanyByName(ctx context.Context, name string) (*Company, error)
	ListCompanies(ctx context.Context) ([]*Company, error)
}

// CreateCompanyInput は会社作成時の入力です。
type CreateCompanyInput struct {
	Name     string
	Location string
	Website  *string
	LinkedIn *string
	Industry *string
}

// CreatePersonInput は担当者作成時の入力です。
type CreatePersonInput struct {
	Name         string
	Designation  string
	Emails       []string
	PhoneNumbers []string
	LinkedIn     *string
}

// IDGenerator は新規エンティティ用の一意な ID を発行します。
type IDGenerator interface {
	NewID() string
}
