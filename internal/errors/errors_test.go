package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, CodeInvalidRequest, "bad input")
	assert.Equal(t, "bad input", err.Error())

	var target *APIError
	assert.True(t, errors.As(error(err), &target))
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		status int
		code   string
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
		{"validation failed", ErrValidationFailed, http.StatusBadRequest, CodeValidationFailed},
		{"not found", ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, CodeRateLimitExceeded},
		{"internal", ErrInternalServer, http.StatusInternalServerError, CodeInternalServer},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable, CodeServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestDomainErrorConstructors(t *testing.T) {
	cause := errors.New("division by zero")

	t.Run("missing columns", func(t *testing.T) {
		err := MissingColumns("essential columns (DISTRICT) missing", []string{"DISTRICT"})
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.Equal(t, CodeMissingColumns, err.ErrorCode)
		ext, ok := err.Details.(Extensions)
		require.True(t, ok)
		assert.Equal(t, []string{"DISTRICT"}, ext["missing_columns"])
		assert.Equal(t, err.Message, ext["error"])
	})

	t.Run("aggregation failed", func(t *testing.T) {
		err := AggregationFailed(cause)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "division by zero", err.Message)
		assert.Equal(t, Extensions{"error": "division by zero"}, err.Details)
	})

	t.Run("dataset unavailable", func(t *testing.T) {
		err := DatasetUnavailable(cause)
		assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
		assert.Equal(t, CodeDatasetUnavailable, err.ErrorCode)
	})

	t.Run("export failed", func(t *testing.T) {
		err := ExportFailed("workbook", cause)
		assert.Equal(t, "workbook export failed", err.Message)
	})

	t.Run("validation", func(t *testing.T) {
		err := ErrValidation("top", "must be at least 1")
		assert.Equal(t, ValidationError{Field: "top", Message: "must be at least 1"}, err.Details)

		multi := NewValidationErrors([]ValidationError{{Field: "a"}, {Field: "b"}})
		assert.Len(t, multi.Details.(ValidationErrors).Errors, 2)
	})

	t.Run("not found", func(t *testing.T) {
		assert.Equal(t, "chart not found", NotFoundError("chart").Message)
	})
}

func TestProblemDetailsMarshal(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeMissingColumns, "Bad Request", "detail", "/data").
		WithExtension("missing_columns", []string{"YEAR"}).
		WithExtension("status", 999)

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, TypeMissingColumns, got["type"])
	assert.EqualValues(t, http.StatusBadRequest, got["status"], "standard members win over extensions")
	assert.Equal(t, "detail", got["detail"])
	assert.Equal(t, "/data", got["instance"])
	assert.Equal(t, []interface{}{"YEAR"}, got["missing_columns"])
}

func TestProblemDetailsOmitsEmptyMembers(t *testing.T) {
	data, err := json.Marshal(&ProblemDetails{Type: TypeInternal, Title: "x", Status: 500})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "detail")
	assert.NotContains(t, string(data), "instance")
}
