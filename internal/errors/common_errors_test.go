package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"without cause", &AppError{Type: ErrTypeConfig, Message: "bad threshold"}, "[CONFIG] bad threshold"},
		{"with cause", NewParsingError("read header", errors.New("EOF")), "[PARSING] read header: EOF"},
		{"export kind", NewExportError("workbook", errors.New("disk full")), "[EXPORT] workbook: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewStorageError("open dataset", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	assert.True(t, errors.As(error(err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewAggregationError("zones", errors.New("boom"))
	assert.Equal(t, ErrTypeAggregation, err.Type)
	assert.Equal(t, "zones", err.Context["stage"])

	bare := &AppError{Type: ErrTypeConfig, Message: "x"}
	bare.WithContext("key", 1)
	assert.Equal(t, 1, bare.Context["key"])
}

func TestConstructorsSetType(t *testing.T) {
	cause := errors.New("c")
	assert.Equal(t, ErrTypeConfig, NewConfigError("m", cause).Type)
	assert.Equal(t, ErrTypeExport, NewExportError("m", cause).Type)
	assert.Equal(t, ErrTypeParsing, NewParsingError("m", cause).Type)
	assert.Equal(t, ErrTypeStorage, NewStorageError("m", cause).Type)
}
