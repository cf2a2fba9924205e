package directory

import "errors"

var (
	ErrInvalidID          = errors.New("directory: invalid id")
	ErrInvalidCompanyName = errors.New("directory: invalid company name")
	ErrInvalidPersonName  = errors.New("directory: invalid person name")
	ErrCompanyNotFound    = errors.New("directory: company not found")
	ErrPersonNotFound     = errors.New("directory: person not found")
)
