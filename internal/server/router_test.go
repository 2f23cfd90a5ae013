// internal/server/router_test.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/common/observability"
)

// opFunc adapts a function to the OperationHandler interface for tests.
type opFunc func(r *http.Request) (interface{}, error)

func (f opFunc) Handle(r *http.Request) (interface{}, error) { return f(r) }

var (
	obsOnce sync.Once
	testObs *observability.Observability
)

// sharedObs avoids re-registering the otel Prometheus exporter per test.
func sharedObs() *observability.Observability {
	obsOnce.Do(func() {
		testObs = observability.New("adega-proxy-test")
	})
	return testObs
}

func newTestRouter(t *testing.T, extract, askOp opFunc) *Router {
	t.Helper()
	if extract == nil {
		extract = func(r *http.Request) (interface{}, error) {
			return map[string]interface{}{"wine": map[string]interface{}{"nome": "stub"}}, nil
		}
	}
	if askOp == nil {
		askOp = func(r *http.Request) (interface{}, error) {
			return map[string]string{"answer": "stub"}, nil
		}
	}
	cors := NewCORSResolver([]string{
		"https://maycowcarrara.github.io",
		"http://localhost:5173",
		"http://localhost:5174",
	})
	return NewRouter(cors, extract, askOp, sharedObs(), logger.NewTestLogger(t))
}

func doRequest(rt *Router, method, path, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rt := newTestRouter(t, nil, nil)

	for _, path := range []string{"/health", "/health?probe=1"} {
		rec := doRequest(rt, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	}
}

func TestRouter_Preflight(t *testing.T) {
	rt := newTestRouter(t, nil, nil)

	for _, path := range []string{"/", "/ask", "/extract-label", "/whatever"} {
		rec := doRequest(rt, http.MethodOptions, path, "http://localhost:5173")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	}
}

func TestRouter_CORSOriginSelection(t *testing.T) {
	rt := newTestRouter(t, nil, nil)

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{name: "allow-listed origin is echoed", origin: "http://localhost:5174", want: "http://localhost:5174"},
		{name: "unknown origin gets the default", origin: "https://not-on-the-list.example", want: "https://maycowcarrara.github.io"},
		{name: "missing origin gets the default", origin: "", want: "https://maycowcarrara.github.io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(rt, http.MethodGet, "/health", tt.origin)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	rt := newTestRouter(t, nil, nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/unknown"},
		{http.MethodDelete, "/extract-label"},
		{http.MethodPut, "/ask"},
		{http.MethodGet, "/extract-label"},
		{http.MethodGet, "/ask"},
		{http.MethodPost, "/health"},
		{http.MethodGet, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doRequest(rt, tt.method, tt.path, "http://localhost:5173")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
			// CORS headers ride on error responses too.
			assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_DispatchSuccess(t *testing.T) {
	rt := newTestRouter(t, nil, opFunc(func(r *http.Request) (interface{}, error) {
		return map[string]string{"answer": "Tintos: Quinta do Vale Meão."}, nil
	}))

	rec := doRequest(rt, http.MethodPost, "/ask", "http://localhost:5173")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Tintos: Quinta do Vale Meão."}`, rec.Body.String())
}

func TestRouter_DispatchErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation error maps to 400",
			err:        commonerrors.NewValidationError("Send JSON: { question: string, vinhos: array }"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Send JSON: { question: string, vinhos: array }",
		},
		{
			name:       "upstream error maps to 500 with provider detail",
			err:        commonerrors.NewUpstreamError(commonerrors.ErrCodeUpstreamFailed, "groq", errors.New("groq error 500: upstream exploded")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "groq error 500: upstream exploded",
		},
		{
			name:       "plain error maps to 500",
			err:        errors.New("something odd"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRouter(t, nil, opFunc(func(r *http.Request) (interface{}, error) {
				return nil, tt.err
			}))

			rec := doRequest(rt, http.MethodPost, "/ask", "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestRouter_ExtractDispatch(t *testing.T) {
	var called bool
	rt := newTestRouter(t, opFunc(func(r *http.Request) (interface{}, error) {
		called = true
		return map[string]interface{}{"wine": map[string]interface{}{"nome": "X", "imgFrente": nil, "imgVerso": nil}}, nil
	}), nil)

	rec := doRequest(rt, http.MethodPost, "/extract-label", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.True(t, strings.Contains(rec.Body.String(), `"imgFrente":null`))
}
