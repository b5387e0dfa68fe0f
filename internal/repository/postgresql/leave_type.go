package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (tenant_id, level_id, name, default_balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.TenantID, leaveType.LevelID, leaveType.Name, leaveType.DefaultBalance,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveType{}, err
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id, tenantID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.tenant_id, lt.level_id, lt.name, lt.default_balance,
			   lt.created_at, lt.updated_at,
			   l.name AS level_name
		FROM leave_types lt
		JOIN levels l ON lt.level_id = l.id
		WHERE lt.id = $1 AND lt.tenant_id = $2
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&lt.ID, &lt.TenantID, &lt.LevelID, &lt.Name, &lt.DefaultBalance,
		&lt.CreatedAt, &lt.UpdatedAt,
		&lt.LevelName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

// GetByLevelID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByLevelID(ctx context.Context, levelID, tenantID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, level_id, name, default_balance, created_at, updated_at
		FROM leave_types
		WHERE level_id = $1 AND tenant_id = $2
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, levelID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.TenantID, &lt.LevelID, &lt.Name, &lt.DefaultBalance,
			&lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, tenantID string, filter leave.ListLeaveTypeFilter) ([]leave.LeaveType, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "lt.tenant_id = $1"
	args := []interface{}{tenantID}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND lt.name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_types lt WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT lt.id, lt.tenant_id, lt.level_id, lt.name, lt.default_balance,
			   lt.created_at, lt.updated_at,
			   l.name AS level_name
		FROM leave_types lt
		JOIN levels l ON lt.level_id = l.id
		WHERE %s
		ORDER BY l.name, lt.name
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.TenantID, &lt.LevelID, &lt.Name, &lt.DefaultBalance,
			&lt.CreatedAt, &lt.UpdatedAt,
			&lt.LevelName,
		); err != nil {
			return nil, 0, err
		}
		types = append(types, lt)
	}

	return types, total, nil
}

// ExistsInLevel implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ExistsInLevel(ctx context.Context, levelID, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_types
			WHERE level_id = $1 AND LOWER(name) = LOWER($2)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, levelID, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest, tenantID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.DefaultBalance != nil {
		updates["default_balance"] = *req.DefaultBalance
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, req.ID, tenantID)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	args = append(args, req.ID, tenantID)

	query := "UPDATE leave_types SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND tenant_id = $%d", i, i+1) +
		" RETURNING id, tenant_id, level_id, name, default_balance, created_at, updated_at"

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, args...).Scan(
		&lt.ID, &lt.TenantID, &lt.LevelID, &lt.Name, &lt.DefaultBalance,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_types
		WHERE id = $1 AND tenant_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
