package employee

import (
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	TenantID      string  `json:"-"`
	StaffID       string  `json:"staff_id"`
	FirstName     string  `json:"first_name"`
	MiddleName    string  `json:"middle_name"`
	Surname       string  `json:"surname"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	JobRole       *string `json:"job_role,omitempty"`
	Branch        *string `json:"branch,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	IsAdmin       bool    `json:"is_admin"`
	LineManagerID *string `json:"line_manager_id,omitempty"`
	RelieverID    *string `json:"reliever_id,omitempty"`
	LevelID       *string `json:"level_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.Surname) {
		errs = append(errs, validator.ValidationError{
			Field:   "surname",
			Message: "surname is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if r.Gender != nil && !validator.IsValidGender(*r.Gender) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be either 'male' or 'female'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID            string  `json:"-"`
	TenantID      string  `json:"-"`
	StaffID       *string `json:"staff_id,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	MiddleName    *string `json:"middle_name,omitempty"`
	Surname       *string `json:"surname,omitempty"`
	JobRole       *string `json:"job_role,omitempty"`
	Branch        *string `json:"branch,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	IsAdmin       *bool   `json:"is_admin,omitempty"`
	LineManagerID *string `json:"line_manager_id,omitempty"`
	RelieverID    *string `json:"reliever_id,omitempty"`
	LevelID       *string `json:"level_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "employee id is required",
		})
	}
	if r.Gender != nil && !validator.IsValidGender(*r.Gender) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be either 'male' or 'female'",
		})
	}
	if r.LevelID != nil && !validator.IsValidUUID(*r.LevelID) {
		errs = append(errs, validator.ValidationError{
			Field:   "level_id",
			Message: "level_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeParams is the repository-level partial update; only non-nil
// fields are written.
type UpdateEmployeeParams struct {
	ID              string
	TenantID        string
	StaffID         *string
	FirstName       *string
	MiddleName      *string
	Surname         *string
	JobRole         *string
	Branch          *string
	Gender          *string
	Avatar          *string
	Password        *string
	IsAdmin         *bool
	IsActive        *bool
	IsEmailVerified *bool
	LineManagerID   *string
	RelieverID      *string
	LevelID         *string
}

type ListFilter struct {
	Search  *string
	LevelID *string
	Page    int
	Limit   int
}
