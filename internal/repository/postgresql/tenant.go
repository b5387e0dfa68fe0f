package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/tenant"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type tenantRepositoryImpl struct {
	db *database.DB
}

func NewTenantRepository(db *database.DB) tenant.TenantRepository {
	return &tenantRepositoryImpl{db: db}
}

// Create implements tenant.TenantRepository.
func (r *tenantRepositoryImpl) Create(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tenants (name, email, password, logo, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Name, t.Email, t.Password, t.Logo, t.Color,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return tenant.Tenant{}, tenant.ErrEmailExists
			}
			return tenant.Tenant{}, tenant.ErrNameExists
		}
		return tenant.Tenant{}, err
	}

	return t, nil
}

// GetByID implements tenant.TenantRepository.
func (r *tenantRepositoryImpl) GetByID(ctx context.Context, id string) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password, logo, color, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var t tenant.Tenant
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Email, &t.Password, &t.Logo, &t.Color,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, err
	}

	return t, nil
}

// GetByEmail implements tenant.TenantRepository.
func (r *tenantRepositoryImpl) GetByEmail(ctx context.Context, email string) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password, logo, color, created_at, updated_at
		FROM tenants
		WHERE LOWER(email) = LOWER($1)
	`

	var t tenant.Tenant
	err := q.QueryRow(ctx, query, email).Scan(
		&t.ID, &t.Name, &t.Email, &t.Password, &t.Logo, &t.Color,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, err
	}

	return t, nil
}

// List implements tenant.TenantRepository.
func (r *tenantRepositoryImpl) List(ctx context.Context, filter tenant.ListFilter) ([]tenant.Tenant, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	if filter.Search != nil && *filter.Search != "" {
		where = "(name ILIKE $1 OR email ILIKE $1)"
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM tenants WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, name, email, password, logo, color, created_at, updated_at
		FROM tenants
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tenants := make([]tenant.Tenant, 0)
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Email, &t.Password, &t.Logo, &t.Color,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, t)
	}

	return tenants, total, nil
}

// Update implements tenant.TenantRepository.
func (r *tenantRepositoryImpl) Update(ctx context.Context, req tenant.UpdateTenantRequest) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, req.ID)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	args = append(args, req.ID)

	query := "UPDATE tenants SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d", i) +
		" RETURNING id, name, email, password, logo, color, created_at, updated_at"

	var t tenant.Tenant
	err := q.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Email, &t.Password, &t.Logo, &t.Color,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return tenant.Tenant{}, tenant.ErrEmailExists
			}
			return tenant.Tenant{}, tenant.ErrNameExists
		}
		return tenant.Tenant{}, err
	}

	return t, nil
}
