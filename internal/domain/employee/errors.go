package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("an employee with this email already exists")
	ErrLevelNotFound    = errors.New("no level found with the provided level id")
)
