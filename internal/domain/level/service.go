package level

import "context"

// LevelService is the level policy: it owns level CRUD and the
// employee-to-level assignment that drives ledger regeneration.
type LevelService interface {
	AddLevel(ctx context.Context, tenantID string, req CreateLevelRequest) (Level, error)
	GetLevel(ctx context.Context, id, tenantID string) (Level, error)
	ListLevels(ctx context.Context, tenantID string, filter ListFilter) ([]Level, int64, error)
	UpdateLevel(ctx context.Context, tenantID string, req UpdateLevelRequest) (Level, error)
	DeleteLevel(ctx context.Context, id, tenantID string) error
	AssignLevel(ctx context.Context, req AssignLevelRequest) error
}
