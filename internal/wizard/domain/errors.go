package domain

import "errors"

var (
	ErrWrongScreen     = errors.New("action not available on this screen")
	ErrNotReady        = errors.New("action is disabled until the screen is complete")
	ErrReadOnly        = errors.New("draft is read-only")
	ErrUnknownOption   = errors.New("unknown option")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrSessionNotFound = errors.New("wizard session not found")
)
