package domain

import "errors"

var (
	ErrNotFound          = errors.New("saved project not found")
	ErrInvalidName       = errors.New("name is required")
	ErrUnsupported       = errors.New("operation not supported by this store")
	ErrUnsupportedSchema = errors.New("saved project schema version is newer than this service")
)
