// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *StandardError
		want int
	}{
		{name: "validation", err: NewValidationError("bad input"), want: http.StatusBadRequest},
		{name: "route not found", err: NewRouteNotFoundError(), want: http.StatusNotFound},
		{name: "upstream", err: NewUpstreamError(ErrCodeUpstreamFailed, "gemini", errors.New("gemini error 500: boom")), want: http.StatusInternalServerError},
		{name: "unconfigured provider", err: NewProviderUnconfiguredError("groq"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestClientMessage(t *testing.T) {
	t.Run("validation keeps its own message", func(t *testing.T) {
		err := NewValidationError("Send JSON: { question: string, vinhos: array }")
		assert.Equal(t, "Send JSON: { question: string, vinhos: array }", err.ClientMessage())
	})

	t.Run("upstream surfaces the provider detail verbatim", func(t *testing.T) {
		err := NewUpstreamError(ErrCodeUpstreamFailed, "groq", errors.New("groq error 503: model overloaded"))
		assert.Equal(t, "groq error 503: model overloaded", err.ClientMessage())
	})

	t.Run("route not found stays terse", func(t *testing.T) {
		assert.Equal(t, "Not found", NewRouteNotFoundError().ClientMessage())
	})
}

func TestNormalize(t *testing.T) {
	t.Run("standard error passes through", func(t *testing.T) {
		orig := NewValidationError("bad")
		assert.Same(t, orig, Normalize(orig))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		norm := Normalize(errors.New("oops"))
		require.NotNil(t, norm)
		assert.Equal(t, ErrCodeInternal, norm.Code)
		assert.Equal(t, "oops", norm.Message)
	})
}
