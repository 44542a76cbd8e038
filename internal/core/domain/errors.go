package domain

import "errors"

// ============================================================================
// Conversion Errors
// ============================================================================

// Validation errors
var (
	ErrMissingFile           = errors.New("transaction file is required")
	ErrMissingBank           = errors.New("bank is required")
	ErrUnknownBank           = errors.New("unknown bank")
	ErrUnknownOutputFormat   = errors.New("unknown output format")
	ErrInvalidFileFormat     = errors.New("file does not match the selected bank format")
	ErrEmptyFile             = errors.New("file contains no transactions")
	ErrInvalidOpeningBalance = errors.New("invalid opening balance")
)

// ============================================================================
// Job History Errors
// ============================================================================

var (
	ErrJobNotFound      = errors.New("conversion job not found")
	ErrJobStoreDisabled = errors.New("conversion history is not enabled")
)
