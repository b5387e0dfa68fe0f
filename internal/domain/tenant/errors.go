package tenant

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrNameExists     = errors.New("a tenant with this name already exists")
	ErrEmailExists    = errors.New("a tenant with this email already exists")
)
