package httpapi

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidCredentials  = "invalid_credentials"
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeInvalidRequest      = "invalid_request"
	ErrCodeNotFound            = "not_found"
	ErrCodeDatabaseUnavailable = "database_unavailable"
	ErrCodeNoFile              = "no_file"
	ErrCodeFileTooLarge        = "file_too_large"
	ErrCodeUnsupportedType     = "unsupported_type"
	ErrCodeInternal            = "internal_error"
)
