package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnsupportedMedia = NewDomainError("UNSUPPORTED_MEDIA", "Unsupported media type")
	ErrPayloadTooLarge  = NewDomainError("PAYLOAD_TOO_LARGE", "Payload exceeds maximum allowed size")
	ErrStoreWrite       = NewDomainError("STORE_WRITE", "Failed to persist record store")
	ErrUpload           = NewDomainError("UPLOAD_FAILED", "Failed to store uploaded media")
)
