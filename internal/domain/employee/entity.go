package employee

import (
	"strings"
	"time"
)

// Employee belongs to a tenant, optionally sits on a level and optionally
// names a line manager and a reliever among the tenant's other employees.
// IsOnLeave is a cache of "has a pending or in-flight approved request",
// maintained transactionally alongside leave-history writes.
type Employee struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`

	StaffID    string  `json:"staff_id"`
	FirstName  string  `json:"first_name"`
	MiddleName string  `json:"middle_name"`
	Surname    string  `json:"surname"`
	Email      string  `json:"email"`
	Password   string  `json:"-"`
	Avatar     *string `json:"avatar,omitempty"`
	JobRole    *string `json:"job_role,omitempty"`
	Branch     *string `json:"branch,omitempty"`
	Gender     *string `json:"gender,omitempty"`

	IsOnLeave       bool `json:"is_on_leave"`
	IsAdmin         bool `json:"is_admin"`
	IsActive        bool `json:"is_active"`
	IsEmailVerified bool `json:"is_email_verified"`

	LineManagerID *string `json:"line_manager_id,omitempty"`
	RelieverID    *string `json:"reliever_id,omitempty"`
	LevelID       *string `json:"level_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined summaries for workflow checks and notification payloads.
	LineManager *Summary `json:"line_manager,omitempty"`
	Reliever    *Summary `json:"reliever,omitempty"`
	LevelName   *string  `json:"level_name,omitempty"`
}

// Summary is the slim shape of a related employee used in snapshots,
// notification payloads and on-leave checks.
type Summary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	IsOnLeave bool   `json:"is_on_leave"`
}

// FullName joins the non-empty name parts with single spaces.
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.MiddleName, e.Surname} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}

func (s *Summary) FullName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.Surname)
	return name
}

// GenderOrEmpty returns the recorded gender in lowercase, or "".
func (e *Employee) GenderOrEmpty() string {
	if e.Gender == nil {
		return ""
	}
	return strings.ToLower(*e.Gender)
}
