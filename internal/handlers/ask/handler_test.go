// internal/handlers/ask/handler_test.go
package ask

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/logger"
)

// stubProvider lets each test script the completion result and capture the
// prompt the handler built.
type stubProvider struct {
	name       string
	answer     string
	err        error
	lastPrompt string
}

func (s *stubProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubProvider) Name() string { return s.name }

func newTestHandler(t *testing.T, provider *stubProvider) *Handler {
	t.Helper()
	return NewHandler(&Config{Provider: provider.name}, provider, logger.NewTestLogger(t))
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, Route, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Handle_Success(t *testing.T) {
	provider := &stubProvider{
		name:   "groq",
		answer: "O Quinta do Vale Meão 2019 é um tinto encorpado do Douro, disponível na adega.",
	}
	handler := newTestHandler(t, provider)

	req := jsonRequest(`{"question":"Quais vinhos são tintos?","vinhos":[{"nome":"Quinta do Vale Meão","status":"available"},{"nome":"Barca Velha","status":"consumed"}]}`)

	out, err := handler.Handle(req)
	require.NoError(t, err)

	output, ok := out.(*Output)
	require.True(t, ok)
	// The completion comes back verbatim, with no post-processing.
	assert.Equal(t, provider.answer, output.Answer)
}

func TestHandler_Handle_PromptContents(t *testing.T) {
	provider := &stubProvider{name: "groq", answer: "ok"}
	handler := newTestHandler(t, provider)

	req := jsonRequest(`{"question":"O que abrir hoje?","vinhos":[{"nome":"X","status":"consumed"},{"nome":"Y"}]}`)

	_, err := handler.Handle(req)
	require.NoError(t, err)

	prompt := provider.lastPrompt
	assert.Contains(t, prompt, "sommelier")
	assert.Contains(t, prompt, "PERGUNTA DO USUÁRIO:\nO que abrir hoje?")
	// The catalog rides along verbatim (compacted), status values included.
	assert.Contains(t, prompt, `[{"nome":"X","status":"consumed"},{"nome":"Y"}]`)
	// Availability policy lives in the prompt, not in server-side validation.
	assert.Contains(t, prompt, "'available'")
	assert.Contains(t, prompt, "'reserved'")
	assert.Contains(t, prompt, "'consumed'")
	assert.Contains(t, prompt, "assuma 'available'")
	// Question precedes catalog.
	assert.Less(t, strings.Index(prompt, "PERGUNTA DO USUÁRIO"), strings.Index(prompt, "CATÁLOGO DE VINHOS"))
}

func TestHandler_Handle_UnrecognizedStatusPassesThrough(t *testing.T) {
	provider := &stubProvider{name: "groq", answer: "ok"}
	handler := newTestHandler(t, provider)

	req := jsonRequest(`{"question":"q","vinhos":[{"nome":"Z","status":"em trânsito"}]}`)

	_, err := handler.Handle(req)
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, `"status":"em trânsito"`)
}

func TestHandler_Handle_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "question is a number", body: `{"question":123,"vinhos":[]}`},
		{name: "question is null", body: `{"question":null,"vinhos":[]}`},
		{name: "question missing", body: `{"vinhos":[]}`},
		{name: "vinhos is an object", body: `{"question":"q","vinhos":{"nome":"X"}}`},
		{name: "vinhos is null", body: `{"question":"q","vinhos":null}`},
		{name: "vinhos missing", body: `{"question":"q"}`},
		{name: "not JSON", body: `question=q`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{name: "groq", answer: "never"}
			handler := newTestHandler(t, provider)

			out, err := handler.Handle(jsonRequest(tt.body))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Empty(t, provider.lastPrompt, "no upstream call may happen on validation errors")

			stdErr := commonerrors.Normalize(err)
			assert.Equal(t, commonerrors.ErrCodeValidationFailed, stdErr.Code)
			assert.Equal(t, http.StatusBadRequest, stdErr.HTTPStatus())
			assert.Equal(t, invalidBodyMessage, stdErr.ClientMessage())
		})
	}
}

func TestHandler_Handle_UpstreamFailure(t *testing.T) {
	provider := &stubProvider{
		name: "groq",
		err:  fmt.Errorf("groq error 503: service busy"),
	}
	handler := newTestHandler(t, provider)

	out, err := handler.Handle(jsonRequest(`{"question":"q","vinhos":[]}`))
	require.Error(t, err)
	assert.Nil(t, out)

	stdErr := commonerrors.Normalize(err)
	assert.Equal(t, http.StatusInternalServerError, stdErr.HTTPStatus())
	assert.Contains(t, stdErr.ClientMessage(), "503")
}

func TestBuildPrompt_EmptyCatalog(t *testing.T) {
	prompt := BuildPrompt("Sugira um vinho.", []byte("[]"))
	assert.True(t, strings.HasSuffix(prompt, "CATÁLOGO DE VINHOS (incluindo status, se presente):\n[]"))
}
