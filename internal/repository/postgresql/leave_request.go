package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.tenant_id, lr.employee_id, lr.line_manager_id, lr.reliever_id, lr.leave_type_id,
	lr.start_date, lr.resumption_date, lr.duration, lr.reason,
	lr.status, lr.rejection_reason, lr.approval_reason, lr.approved_by, lr.rejected_by, lr.approval_count,
	lr.balance_before_leave, lr.remaining_days, lr.document_url,
	lr.line_manager_name, lr.line_manager_email, lr.reliever_name, lr.reliever_email,
	lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row, withJoins bool) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	dest := []interface{}{
		&lr.ID, &lr.TenantID, &lr.EmployeeID, &lr.LineManagerID, &lr.RelieverID, &lr.LeaveTypeID,
		&lr.StartDate, &lr.ResumptionDate, &lr.Duration, &lr.Reason,
		&lr.Status, &lr.RejectionReason, &lr.ApprovalReason, &lr.ApprovedBy, &lr.RejectedBy, &lr.ApprovalCount,
		&lr.BalanceBeforeLeave, &lr.RemainingDays, &lr.DocumentURL,
		&lr.LineManagerName, &lr.LineManagerEmail, &lr.RelieverName, &lr.RelieverEmail,
		&lr.CreatedAt, &lr.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &lr.EmployeeName, &lr.EmployeeEmail, &lr.LeaveTypeName)
	}
	if err := row.Scan(dest...); err != nil {
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_history (
			tenant_id, employee_id, line_manager_id, reliever_id, leave_type_id,
			start_date, resumption_date, duration, reason, document_url,
			line_manager_name, line_manager_email, reliever_name, reliever_email,
			balance_before_leave, remaining_days
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16
		) RETURNING id, status, approval_count, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.TenantID, request.EmployeeID, request.LineManagerID, request.RelieverID, request.LeaveTypeID,
		request.StartDate, request.ResumptionDate, request.Duration, request.Reason, request.DocumentURL,
		request.LineManagerName, request.LineManagerEmail, request.RelieverName, request.RelieverEmail,
		request.BalanceBeforeLeave, request.RemainingDays,
	).Scan(&request.ID, &request.Status, &request.ApprovalCount, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id, tenantID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   e.first_name || ' ' || e.surname AS employee_name,
			   e.email AS employee_email,
			   lt.name AS leave_type_name
		FROM leave_history lr
		JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.id = $1 AND lr.tenant_id = $2
	`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, tenantID), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// GetByIDForUpdate implements leave.LeaveRequestRepository. The row lock
// serializes concurrent reviews of the same request for the rest of the
// surrounding transaction.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id, tenantID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_history lr
		WHERE lr.id = $1 AND lr.tenant_id = $2
		FOR UPDATE
	`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, tenantID), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, tenantID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "lr.tenant_id = $1"
	args := []interface{}{tenantID}

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND lr.employee_id = $%d", len(args)+1)
		args = append(args, *filter.EmployeeID)
	}
	if filter.LineManagerID != nil {
		where += fmt.Sprintf(" AND lr.line_manager_id = $%d", len(args)+1)
		args = append(args, *filter.LineManagerID)
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND lr.status = $%d", len(args)+1)
		args = append(args, *filter.Status)
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (e.first_name ILIKE $%d OR e.surname ILIKE $%d OR lt.name ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM leave_history lr
		JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT `+leaveRequestColumns+`,
			   e.first_name || ' ' || e.surname AS employee_name,
			   e.email AS employee_email,
			   lt.name AS leave_type_name
		FROM leave_history lr
		JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}

	return requests, total, nil
}

// ListForReport implements leave.LeaveRequestRepository. Only concluded
// requests are exported; rows are ordered by start date so the export reads
// chronologically.
func (r *leaveRequestRepositoryImpl) ListForReport(ctx context.Context, tenantID string, startDate, endDate time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   e.first_name || ' ' || e.surname AS employee_name,
			   e.email AS employee_email,
			   lt.name AS leave_type_name
		FROM leave_history lr
		JOIN employees e ON lr.employee_id = e.id
		LEFT JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.tenant_id = $1 AND lr.start_date >= $2 AND lr.start_date <= $3
		  AND lr.status IN ('approved', 'rejected')
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, nil
}

// HasPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasPending(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_history
			WHERE employee_id = $1 AND status = 'pending'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveRequestParams) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if req.RejectionReason != nil {
		updates["rejection_reason"] = *req.RejectionReason
	}
	if req.ApprovalReason != nil {
		updates["approval_reason"] = *req.ApprovalReason
	}
	if req.ApprovedBy != nil {
		updates["approved_by"] = *req.ApprovedBy
	}
	if req.RejectedBy != nil {
		updates["rejected_by"] = *req.RejectedBy
	}
	if req.ApprovalCount != nil {
		updates["approval_count"] = *req.ApprovalCount
	}
	if req.BalanceBeforeLeave != nil {
		updates["balance_before_leave"] = *req.BalanceBeforeLeave
	}
	if req.RemainingDays != nil {
		updates["remaining_days"] = *req.RemainingDays
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave request update")
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

	query := "UPDATE leave_history SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d", i)

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id, tenantID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_history
		WHERE id = $1 AND tenant_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
