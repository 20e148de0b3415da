package domain

import "errors"

var (
	ErrNoActiveDocument = errors.New("no active document")
	ErrNoActiveSession  = errors.New("no active session")
	ErrNoEditableView   = errors.New("focused view is not editable")
)
