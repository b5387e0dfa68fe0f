package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.tenant_id, e.staff_id, e.first_name, e.middle_name, e.surname,
	e.email, e.password, e.avatar, e.job_role, e.branch, e.gender,
	e.is_on_leave, e.is_admin, e.is_active, e.is_email_verified,
	e.line_manager_id, e.reliever_id, e.level_id,
	e.created_at, e.updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.TenantID, &emp.StaffID, &emp.FirstName, &emp.MiddleName, &emp.Surname,
		&emp.Email, &emp.Password, &emp.Avatar, &emp.JobRole, &emp.Branch, &emp.Gender,
		&emp.IsOnLeave, &emp.IsAdmin, &emp.IsActive, &emp.IsEmailVerified,
		&emp.LineManagerID, &emp.RelieverID, &emp.LevelID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			tenant_id, staff_id, first_name, middle_name, surname,
			email, password, job_role, branch, gender,
			is_admin, is_active, line_manager_id, reliever_id, level_id
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.TenantID, emp.StaffID, emp.FirstName, emp.MiddleName, emp.Surname,
		emp.Email, emp.Password, emp.JobRole, emp.Branch, emp.Gender,
		emp.IsAdmin, emp.IsActive, emp.LineManagerID, emp.RelieverID, emp.LevelID,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id, tenantID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1 AND e.tenant_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetWithRelations implements employee.EmployeeRepository. Line manager and
// reliever summaries are loaded in the same round trip since the workflow
// needs their on-leave flags and emails.
func (r *employeeRepositoryImpl) GetWithRelations(ctx context.Context, id, tenantID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `,
			   lm.id, lm.first_name, lm.surname, lm.email, lm.is_on_leave,
			   rl.id, rl.first_name, rl.surname, rl.email, rl.is_on_leave,
			   l.name AS level_name
		FROM employees e
		LEFT JOIN employees lm ON e.line_manager_id = lm.id
		LEFT JOIN employees rl ON e.reliever_id = rl.id
		LEFT JOIN levels l ON e.level_id = l.id
		WHERE e.id = $1 AND e.tenant_id = $2
	`

	var emp employee.Employee
	var lmID, lmFirst, lmSurname, lmEmail *string
	var lmOnLeave *bool
	var rlID, rlFirst, rlSurname, rlEmail *string
	var rlOnLeave *bool

	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&emp.ID, &emp.TenantID, &emp.StaffID, &emp.FirstName, &emp.MiddleName, &emp.Surname,
		&emp.Email, &emp.Password, &emp.Avatar, &emp.JobRole, &emp.Branch, &emp.Gender,
		&emp.IsOnLeave, &emp.IsAdmin, &emp.IsActive, &emp.IsEmailVerified,
		&emp.LineManagerID, &emp.RelieverID, &emp.LevelID,
		&emp.CreatedAt, &emp.UpdatedAt,
		&lmID, &lmFirst, &lmSurname, &lmEmail, &lmOnLeave,
		&rlID, &rlFirst, &rlSurname, &rlEmail, &rlOnLeave,
		&emp.LevelName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	if lmID != nil {
		emp.LineManager = &employee.Summary{
			ID:        *lmID,
			FirstName: derefOrEmpty(lmFirst),
			Surname:   derefOrEmpty(lmSurname),
			Email:     derefOrEmpty(lmEmail),
			IsOnLeave: lmOnLeave != nil && *lmOnLeave,
		}
	}
	if rlID != nil {
		emp.Reliever = &employee.Summary{
			ID:        *rlID,
			FirstName: derefOrEmpty(rlFirst),
			Surname:   derefOrEmpty(rlSurname),
			Email:     derefOrEmpty(rlEmail),
			IsOnLeave: rlOnLeave != nil && *rlOnLeave,
		}
	}

	return emp, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetByEmail implements employee.EmployeeRepository. Lookup is global, not
// tenant scoped, because login happens before the tenant is known.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE LOWER(e.email) = LOWER($1)
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByLevelID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByLevelID(ctx context.Context, levelID, tenantID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.level_id = $1 AND e.tenant_id = $2
		ORDER BY e.surname, e.first_name
	`

	rows, err := q.Query(ctx, query, levelID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, tenantID string, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "e.tenant_id = $1"
	args := []interface{}{tenantID}

	if filter.LevelID != nil {
		where += fmt.Sprintf(" AND e.level_id = $%d", len(args)+1)
		args = append(args, *filter.LevelID)
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (e.first_name ILIKE $%d OR e.surname ILIKE $%d OR e.email ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees e WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT `+employeeColumns+`,
			   l.name AS level_name
		FROM employees e
		LEFT JOIN levels l ON e.level_id = l.id
		WHERE %s
		ORDER BY e.surname, e.first_name
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.TenantID, &emp.StaffID, &emp.FirstName, &emp.MiddleName, &emp.Surname,
			&emp.Email, &emp.Password, &emp.Avatar, &emp.JobRole, &emp.Branch, &emp.Gender,
			&emp.IsOnLeave, &emp.IsAdmin, &emp.IsActive, &emp.IsEmailVerified,
			&emp.LineManagerID, &emp.RelieverID, &emp.LevelID,
			&emp.CreatedAt, &emp.UpdatedAt,
			&emp.LevelName,
		); err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeParams) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.StaffID != nil {
		updates["staff_id"] = *req.StaffID
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.MiddleName != nil {
		updates["middle_name"] = *req.MiddleName
	}
	if req.Surname != nil {
		updates["surname"] = *req.Surname
	}
	if req.JobRole != nil {
		updates["job_role"] = *req.JobRole
	}
	if req.Branch != nil {
		updates["branch"] = *req.Branch
	}
	if req.Gender != nil {
		updates["gender"] = strings.ToLower(*req.Gender)
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsEmailVerified != nil {
		updates["is_email_verified"] = *req.IsEmailVerified
	}
	if req.LineManagerID != nil {
		updates["line_manager_id"] = *req.LineManagerID
	}
	if req.RelieverID != nil {
		updates["reliever_id"] = *req.RelieverID
	}
	if req.LevelID != nil {
		updates["level_id"] = *req.LevelID
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, req.ID, req.TenantID)
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
	args = append(args, req.ID, req.TenantID)

	query := "UPDATE employees e SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE e.id = $%d AND e.tenant_id = $%d", i, i+1) +
		" RETURNING " + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// SetOnLeave implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetOnLeave(ctx context.Context, id string, onLeave bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_on_leave = $2,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, id, onLeave)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ClearOnLeaveForResumed implements employee.EmployeeRepository. An employee
// is cleared when every approved request of theirs has passed its resumption
// date.
func (r *employeeRepositoryImpl) ClearOnLeaveForResumed(ctx context.Context, asOf time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees e
		SET is_on_leave = FALSE,
			updated_at = NOW()
		WHERE e.is_on_leave = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM leave_history lr
			WHERE lr.employee_id = e.id
			AND lr.status = 'approved'
			AND lr.resumption_date > $1
		)
		AND NOT EXISTS (
			SELECT 1 FROM leave_history lr
			WHERE lr.employee_id = e.id
			AND lr.status = 'pending'
		)
	`

	result, err := q.Exec(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employees
		WHERE id = $1 AND tenant_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
