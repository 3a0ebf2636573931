package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store and API errors
	ErrServiceUnavailable   = fmt.Errorf("service unavailable")
	ErrItemNotFound         = fmt.Errorf("item not found")
	ErrCompanyNotFound      = fmt.Errorf("company not found")
	ErrAuditNotFound        = fmt.Errorf("audit log entry not found")
	ErrNotificationNotFound = fmt.Errorf("notification not found")
	ErrStageUnknown         = fmt.Errorf("unknown stage")
	ErrInvalidKind          = fmt.Errorf("invalid item kind")
	ErrTimeout              = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
