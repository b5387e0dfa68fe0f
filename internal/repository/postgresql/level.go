package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/level"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type levelRepositoryImpl struct {
	db *database.DB
}

func NewLevelRepository(db *database.DB) level.LevelRepository {
	return &levelRepositoryImpl{db: db}
}

// Create implements level.LevelRepository.
func (r *levelRepositoryImpl) Create(ctx context.Context, lvl level.Level) (level.Level, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO levels (tenant_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, lvl.TenantID, lvl.Name, lvl.Description).
		Scan(&lvl.ID, &lvl.CreatedAt, &lvl.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			return level.Level{}, level.ErrLevelExists
		}
		return level.Level{}, err
	}

	return lvl, nil
}

// GetByID implements level.LevelRepository.
func (r *levelRepositoryImpl) GetByID(ctx context.Context, id, tenantID string) (level.Level, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM levels
		WHERE id = $1 AND tenant_id = $2
	`

	var lvl level.Level
	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&lvl.ID, &lvl.TenantID, &lvl.Name, &lvl.Description,
		&lvl.CreatedAt, &lvl.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return level.Level{}, level.ErrLevelNotFound
		}
		return level.Level{}, err
	}

	return lvl, nil
}

// GetByName implements level.LevelRepository.
func (r *levelRepositoryImpl) GetByName(ctx context.Context, name, tenantID string) (level.Level, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM levels
		WHERE LOWER(name) = LOWER($1) AND tenant_id = $2
	`

	var lvl level.Level
	err := q.QueryRow(ctx, query, name, tenantID).Scan(
		&lvl.ID, &lvl.TenantID, &lvl.Name, &lvl.Description,
		&lvl.CreatedAt, &lvl.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return level.Level{}, level.ErrLevelNotFound
		}
		return level.Level{}, err
	}

	return lvl, nil
}

// List implements level.LevelRepository.
func (r *levelRepositoryImpl) List(ctx context.Context, tenantID string, filter level.ListFilter) ([]level.Level, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM levels WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM levels
		WHERE %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	levels := make([]level.Level, 0)
	for rows.Next() {
		var lvl level.Level
		if err := rows.Scan(
			&lvl.ID, &lvl.TenantID, &lvl.Name, &lvl.Description,
			&lvl.CreatedAt, &lvl.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		levels = append(levels, lvl)
	}

	return levels, total, nil
}

// Update implements level.LevelRepository.
func (r *levelRepositoryImpl) Update(ctx context.Context, req level.UpdateLevelRequest, tenantID string) (level.Level, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
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

	query := "UPDATE levels SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND tenant_id = $%d", i, i+1) +
		" RETURNING id, tenant_id, name, description, created_at, updated_at"

	var lvl level.Level
	err := q.QueryRow(ctx, query, args...).Scan(
		&lvl.ID, &lvl.TenantID, &lvl.Name, &lvl.Description,
		&lvl.CreatedAt, &lvl.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return level.Level{}, level.ErrLevelNotFound
		}
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			return level.Level{}, level.ErrLevelExists
		}
		return level.Level{}, err
	}

	return lvl, nil
}

// Delete implements level.LevelRepository.
func (r *levelRepositoryImpl) Delete(ctx context.Context, id, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM levels
		WHERE id = $1 AND tenant_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return level.ErrLevelNotFound
	}
	return nil
}
