package level

import "context"

// LevelRepository - interface for levels table
type LevelRepository interface {
	Create(ctx context.Context, lvl Level) (Level, error)
	GetByID(ctx context.Context, id, tenantID string) (Level, error)
	// GetByName matches case-insensitively; level names are unique within
	// a tenant regardless of case.
	GetByName(ctx context.Context, name, tenantID string) (Level, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]Level, int64, error)
	Update(ctx context.Context, req UpdateLevelRequest, tenantID string) (Level, error)
	Delete(ctx context.Context, id, tenantID string) error
}
