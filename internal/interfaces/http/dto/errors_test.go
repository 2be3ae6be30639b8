package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnsupportedMedia, http.StatusBadRequest},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeStoreWrite, http.StatusInternalServerError},
		{ErrCodeUpload, http.StatusInternalServerError},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_INPUT"))
	assert.Equal(t, ErrCodeUnsupportedMedia, NormalizeErrorCode("UNSUPPORTED_MEDIA"))
	assert.Equal(t, ErrCodePayloadTooLarge, NormalizeErrorCode("PAYLOAD_TOO_LARGE"))
	assert.Equal(t, ErrCodeUpload, NormalizeErrorCode("UPLOAD_FAILED"))
	assert.Equal(t, ErrCodeStoreWrite, NormalizeErrorCode("STORE_WRITE"))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(ErrCodeInternal))
	assert.Equal(t, "WEIRD", NormalizeErrorCode("WEIRD"))
}
