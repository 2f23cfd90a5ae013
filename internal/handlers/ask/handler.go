// internal/handlers/ask/handler.go
package ask

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/providers"
)

const Route = "/ask"

const invalidBodyMessage = "Send JSON: { question: string, vinhos: array }"

type Handler struct {
	config   *Config
	provider providers.TextProvider
	logger   logger.Logger
}

func NewHandler(config *Config, provider providers.TextProvider, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		provider: provider,
		logger: log.With(map[string]interface{}{
			"route":    Route,
			"provider": provider.Name(),
		}),
	}
}

// Handle runs the question-answering operation: type-check the body, build
// the catalog prompt, make one text-completion call, return the answer
// verbatim.
func (h *Handler) Handle(r *http.Request) (interface{}, error) {
	start := time.Now()

	question, catalogJSON, err := parseInput(r)
	if err != nil {
		return nil, err
	}

	h.logger.Info("ask.start", map[string]interface{}{
		"questionLen": len(question),
		"catalogLen":  len(catalogJSON),
	})

	prompt := BuildPrompt(question, catalogJSON)

	answer, err := h.provider.GenerateText(r.Context(), prompt)
	if err != nil {
		var stdErr *commonerrors.StandardError
		if errors.As(err, &stdErr) {
			return nil, err
		}
		return nil, commonerrors.NewUpstreamError(commonerrors.ErrCodeUpstreamFailed, h.provider.Name(), err)
	}

	h.logger.Info("ask.ok", map[string]interface{}{
		"answerLen": len(answer),
		"elapsedMs": time.Since(start).Milliseconds(),
	})

	return &Output{Answer: answer}, nil
}

// parseInput enforces the wire contract: question must be a JSON string and
// vinhos a JSON array. The catalog is re-emitted compacted but otherwise
// verbatim, preserving the caller's key order and any unrecognized status
// values (prompt policy handles those, not the server).
func parseInput(r *http.Request) (string, []byte, error) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return "", nil, commonerrors.NewValidationError(invalidBodyMessage)
	}

	// JSON null unmarshals into both target types without error; it is not a
	// string or an array, so reject it explicitly.
	if isNull(input.Question) || isNull(input.Vinhos) {
		return "", nil, commonerrors.NewValidationError(invalidBodyMessage)
	}

	var question string
	if err := json.Unmarshal(input.Question, &question); err != nil {
		return "", nil, commonerrors.NewValidationError(invalidBodyMessage)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(input.Vinhos, &items); err != nil {
		return "", nil, commonerrors.NewValidationError(invalidBodyMessage)
	}

	var catalog bytes.Buffer
	if err := json.Compact(&catalog, input.Vinhos); err != nil {
		return "", nil, commonerrors.NewValidationError(invalidBodyMessage)
	}

	return question, catalog.Bytes(), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
