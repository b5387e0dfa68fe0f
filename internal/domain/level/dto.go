package level

import "github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"

type CreateLevelRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateLevelRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLevelRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateLevelRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "level id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Search *string
	Page   int
	Limit  int
}

// AssignLevelRequest moves an employee onto a level, triggering ledger
// regeneration.
type AssignLevelRequest struct {
	EmployeeID string `json:"employee_id"`
	LevelID    string `json:"level_id"`
	TenantID   string `json:"-"`
}

func (r *AssignLevelRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LevelID) {
		errs = append(errs, validator.ValidationError{
			Field:   "level_id",
			Message: "level_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
