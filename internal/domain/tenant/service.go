package tenant

import "context"

// TenantService manages tenant records. Tenants are created by a platform
// administrator and never hard-deleted in normal operation.
type TenantService interface {
	CreateTenant(ctx context.Context, req CreateTenantRequest) (Tenant, error)
	GetTenant(ctx context.Context, id string) (Tenant, error)
	ListTenants(ctx context.Context, filter ListFilter) ([]Tenant, int64, error)
	UpdateTenant(ctx context.Context, req UpdateTenantRequest) (Tenant, error)
}
