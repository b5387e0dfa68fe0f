package tenant

import "github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"

type CreateTenantRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Logo     *string `json:"logo,omitempty"`
	Color    *string `json:"color,omitempty"`
}

func (r *CreateTenantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
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
	if r.Color != nil && !validator.IsValidHexColor(*r.Color) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be a valid HEX color code",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTenantRequest struct {
	ID    string  `json:"-"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Logo  *string `json:"logo,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (r *UpdateTenantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "tenant id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Color != nil && !validator.IsValidHexColor(*r.Color) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be a valid HEX color code",
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
