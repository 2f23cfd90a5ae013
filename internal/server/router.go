// internal/server/router.go
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/common/metrics"
	"adega-proxy/internal/common/observability"
	"adega-proxy/internal/handlers/ask"
	extractlabel "adega-proxy/internal/handlers/extract-label"
)

// OperationHandler is what both proxy operations look like to the router:
// a request in, a JSON-marshalable body or an error out.
type OperationHandler interface {
	Handle(r *http.Request) (interface{}, error)
}

// Router owns the full public surface: CORS on everything, preflight,
// health, the two operations, JSON 404 for the rest. It keeps no state
// between requests.
type Router struct {
	cors    *CORSResolver
	extract OperationHandler
	ask     OperationHandler
	errors  *commonerrors.ErrorHandler
	obs     *observability.Observability
	logger  logger.Logger
}

func NewRouter(cors *CORSResolver, extract, askHandler OperationHandler, obs *observability.Observability, log logger.Logger) *Router {
	return &Router{
		cors:    cors,
		extract: extract,
		ask:     askHandler,
		errors:  commonerrors.NewErrorHandler(log),
		obs:     obs,
		logger:  log,
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()

	origin := rt.cors.Resolve(r.Header.Get("Origin"))
	applyCORSHeaders(w.Header(), origin)

	route, status := rt.route(w, r, requestID)

	metrics.ProxyRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	metrics.ProxyRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	rt.obs.RecordRequest(r.Context(), route, strconv.Itoa(status))
	rt.obs.RecordRequestDuration(r.Context(), route, time.Since(start))

	rt.logger.Info("request", map[string]interface{}{
		"requestId": requestID,
		"method":    r.Method,
		"path":      r.URL.Path,
		"route":     route,
		"status":    status,
		"elapsedMs": time.Since(start).Milliseconds(),
	})
}

func (rt *Router) route(w http.ResponseWriter, r *http.Request, requestID string) (string, int) {
	// Preflight applies to any path and carries no body.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return "preflight", http.StatusNoContent
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/health":
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return "/health", http.StatusOK

	case r.Method == http.MethodPost && r.URL.Path == extractlabel.Route:
		return extractlabel.Route, rt.dispatch(w, r, extractlabel.Route, rt.extract, requestID)

	case r.Method == http.MethodPost && r.URL.Path == ask.Route:
		return ask.Route, rt.dispatch(w, r, ask.Route, rt.ask, requestID)

	default:
		status, body := rt.errors.HandleRequestError("unmatched", requestID, commonerrors.NewRouteNotFoundError())
		writeJSON(w, status, body)
		return "unmatched", status
	}
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request, route string, h OperationHandler, requestID string) int {
	out, err := h.Handle(r)
	if err != nil {
		status, body := rt.errors.HandleRequestError(route, requestID, err)
		writeJSON(w, status, body)
		return status
	}

	writeJSON(w, http.StatusOK, out)
	return http.StatusOK
}

func applyCORSHeaders(h http.Header, origin string) {
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
