package tenant

import (
	"context"
	"fmt"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/tenant"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	tenant.TenantRepository
}

func NewService(tenantRepository tenant.TenantRepository) *Service {
	return &Service{TenantRepository: tenantRepository}
}

// CreateTenant implements tenant.TenantService.
func (s *Service) CreateTenant(ctx context.Context, req tenant.CreateTenantRequest) (tenant.Tenant, error) {
	if err := req.Validate(); err != nil {
		return tenant.Tenant{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return tenant.Tenant{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.TenantRepository.Create(ctx, tenant.Tenant{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Logo:     req.Logo,
		Color:    req.Color,
	})
	if err != nil {
		return tenant.Tenant{}, err
	}

	created.Password = ""
	return created, nil
}

// GetTenant implements tenant.TenantService.
func (s *Service) GetTenant(ctx context.Context, id string) (tenant.Tenant, error) {
	t, err := s.TenantRepository.GetByID(ctx, id)
	if err != nil {
		return tenant.Tenant{}, err
	}
	t.Password = ""
	return t, nil
}

// ListTenants implements tenant.TenantService.
func (s *Service) ListTenants(ctx context.Context, filter tenant.ListFilter) ([]tenant.Tenant, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	tenants, total, err := s.TenantRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range tenants {
		tenants[i].Password = ""
	}
	return tenants, total, nil
}

// UpdateTenant implements tenant.TenantService.
func (s *Service) UpdateTenant(ctx context.Context, req tenant.UpdateTenantRequest) (tenant.Tenant, error) {
	if err := req.Validate(); err != nil {
		return tenant.Tenant{}, err
	}

	t, err := s.TenantRepository.Update(ctx, req)
	if err != nil {
		return tenant.Tenant{}, err
	}
	t.Password = ""
	return t, nil
}
