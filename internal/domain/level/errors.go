package level

import "errors"

var (
	ErrLevelNotFound = errors.New("no level found with the provided level id")
	ErrLevelExists   = errors.New("a level with this name already exists")
)
