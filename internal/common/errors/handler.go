// internal/common/errors/handler.go
package errors

import "time"

// ErrorHandler normalizes request errors and decides the HTTP response shape.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorBody is the fixed JSON error shape the catalog client consumes.
type ErrorBody struct {
	Error string `json:"error"`
}

// HandleRequestError converts any handler error into the status and body to
// send. Every failure is request-scoped; there is no retry or recovery.
func (h *ErrorHandler) HandleRequestError(route string, requestID string, err error) (int, ErrorBody) {
	stdErr := Normalize(err)

	h.logger.Error("request failed", map[string]interface{}{
		"route":     route,
		"requestId": requestID,
		"errorCode": string(stdErr.Code),
		"error":     stdErr.ClientMessage(),
		"retryable": stdErr.Retryable,
		"timestamp": stdErr.Timestamp.Format(time.RFC3339),
	})

	return stdErr.HTTPStatus(), ErrorBody{Error: stdErr.ClientMessage()}
}
