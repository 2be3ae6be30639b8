package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when input fails domain validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a record is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Media error codes
const (
	// ErrCodeUnsupportedMedia is used when an upload is neither image nor video
	ErrCodeUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA"
	// ErrCodePayloadTooLarge is used when an upload exceeds the size limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
	// ErrCodeUpload is used when the blob backend fails to store an upload
	ErrCodeUpload = "ERR_UPLOAD"
)

// Persistence error codes
const (
	// ErrCodeStoreWrite is used when the record store cannot be read or written
	ErrCodeStoreWrite = "ERR_STORE_WRITE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeUnsupportedMedia: http.StatusBadRequest,
	ErrCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeUpload:           http.StatusInternalServerError,

	ErrCodeStoreWrite: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to transport codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":         ErrCodeNotFound,
	"INVALID_INPUT":     ErrCodeValidation,
	"UNSUPPORTED_MEDIA": ErrCodeUnsupportedMedia,
	"PAYLOAD_TOO_LARGE": ErrCodePayloadTooLarge,
	"STORE_WRITE":       ErrCodeStoreWrite,
	"UPLOAD_FAILED":     ErrCodeUpload,
	"BAD_REQUEST":       ErrCodeBadRequest,
	"INTERNAL_ERROR":    ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the transport format
// If the code is already in the transport format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
