package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Get implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID, leaveTypeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.tenant_id, b.employee_id, b.leave_type_id, b.balance,
			   b.created_at, b.updated_at,
			   lt.name AS leave_type_name, lt.default_balance
		FROM employee_leave_balances b
		JOIN leave_types lt ON b.leave_type_id = lt.id
		WHERE b.employee_id = $1 AND b.leave_type_id = $2
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&balance.ID, &balance.TenantID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Balance,
		&balance.CreatedAt, &balance.UpdatedAt,
		&balance.LeaveTypeName, &balance.DefaultBalance,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID, tenantID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.tenant_id, b.employee_id, b.leave_type_id, b.balance,
			   b.created_at, b.updated_at,
			   lt.name AS leave_type_name, lt.default_balance
		FROM employee_leave_balances b
		JOIN leave_types lt ON b.leave_type_id = lt.id
		WHERE b.employee_id = $1 AND b.tenant_id = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var balance leave.LeaveBalance
		if err := rows.Scan(
			&balance.ID, &balance.TenantID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Balance,
			&balance.CreatedAt, &balance.UpdatedAt,
			&balance.LeaveTypeName, &balance.DefaultBalance,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, nil
}

// Insert implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Insert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_leave_balances (tenant_id, employee_id, leave_type_id, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.TenantID, balance.EmployeeID, balance.LeaveTypeID, balance.Balance,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		// Conflict means a concurrent insert won the race; read the winner.
		if err == pgx.ErrNoRows {
			return r.Get(ctx, balance.EmployeeID, balance.LeaveTypeID)
		}
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// InsertMany implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) InsertMany(ctx context.Context, balances []leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_leave_balances (tenant_id, employee_id, leave_type_id, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id) DO NOTHING
	`

	for _, balance := range balances {
		if _, err := q.Exec(ctx, query,
			balance.TenantID, balance.EmployeeID, balance.LeaveTypeID, balance.Balance,
		); err != nil {
			return err
		}
	}
	return nil
}

// Reserve deducts amount from the ledger row. The balance check sits in the
// WHERE clause so two concurrent reservations cannot both drain the same
// days; the loser matches zero rows.
func (r *leaveBalanceRepositoryImpl) Reserve(ctx context.Context, employeeID, leaveTypeID string, amount int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_leave_balances
		SET balance = balance - $3,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2
		AND balance >= $3
	`

	result, err := q.Exec(ctx, query, employeeID, leaveTypeID, amount)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing row from an overdraw.
		var exists bool
		checkQuery := `
			SELECT EXISTS (
				SELECT 1 FROM employee_leave_balances
				WHERE employee_id = $1 AND leave_type_id = $2
			)
		`
		if err := q.QueryRow(ctx, checkQuery, employeeID, leaveTypeID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return leave.ErrBalanceNotFound
		}
		return leave.ErrInsufficientBalance
	}

	return nil
}

// Restore returns amount to the ledger row after a rejection or cancellation.
func (r *leaveBalanceRepositoryImpl) Restore(ctx context.Context, employeeID, leaveTypeID string, amount int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_leave_balances
		SET balance = balance + $3,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	result, err := q.Exec(ctx, query, employeeID, leaveTypeID, amount)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// DeleteByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employee_leave_balances
		WHERE employee_id = $1
	`

	_, err := q.Exec(ctx, query, employeeID)
	return err
}

// DeleteByLeaveType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) DeleteByLeaveType(ctx context.Context, leaveTypeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employee_leave_balances
		WHERE leave_type_id = $1
	`

	_, err := q.Exec(ctx, query, leaveTypeID)
	return err
}

// SetBalanceForType overwrites every ledger row of the type with the new
// balance, in-flight spending included. Used when an admin edits the type's
// default balance.
func (r *leaveBalanceRepositoryImpl) SetBalanceForType(ctx context.Context, leaveTypeID string, balance int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_leave_balances
		SET balance = $2,
			updated_at = NOW()
		WHERE leave_type_id = $1
	`

	_, err := q.Exec(ctx, query, leaveTypeID, balance)
	return err
}
