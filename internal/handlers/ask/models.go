// internal/handlers/ask/models.go
package ask

import "encoding/json"

// Wine status values understood by the prompt policy. They are never
// validated server-side: anything else passes through and the prompt tells
// the model to treat missing status as available.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusConsumed  = "consumed"
)

// Input carries the raw request fields so the handler can type-check them
// itself: question must decode as a string, vinhos as an array.
type Input struct {
	Question json.RawMessage `json:"question"`
	Vinhos   json.RawMessage `json:"vinhos"`
}

type Output struct {
	Answer string `json:"answer"`
}
