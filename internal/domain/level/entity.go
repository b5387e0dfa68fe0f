package level

import (
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
)

// Level is a named organizational tier within a tenant. The set of leave
// types applicable at the level lives on the leave_types table (level_id
// foreign key); LeaveTypes is joined for responses.
type Level struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	LeaveTypes []leave.LeaveType `json:"leave_types,omitempty"`
}
