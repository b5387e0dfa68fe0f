package tenant

import "context"

// TenantRepository - interface for tenants table
type TenantRepository interface {
	Create(ctx context.Context, t Tenant) (Tenant, error)
	GetByID(ctx context.Context, id string) (Tenant, error)
	GetByEmail(ctx context.Context, email string) (Tenant, error)
	List(ctx context.Context, filter ListFilter) ([]Tenant, int64, error)
	Update(ctx context.Context, req UpdateTenantRequest) (Tenant, error)
}
