// Package api - HTTP handlers for warehouse quotes
// Handlers wrap the engine; they contain no pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/engine"
	"warehouse-quote/core/output"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

// maxRequestBytes caps a quote request body
const maxRequestBytes = 64 << 10

// RefreshStatus reports when the catalog was last reloaded and how it went.
// A zero time means no reload has run yet.
type RefreshStatus func() (time.Time, error)

// Handler serves quote requests against the current catalog snapshot
type Handler struct {
	holder     *core.Holder
	calculator *engine.Calculator
	logger     *zap.Logger
	version    string
	refresh    RefreshStatus
}

// NewHandler creates a handler
func NewHandler(holder *core.Holder, calculator *engine.Calculator, logger *zap.Logger, version string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{holder: holder, calculator: calculator, logger: logger, version: version}
}

// HandleQuote handles POST /v1/quotes
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	snap := h.holder.Current()
	if snap == nil {
		h.writeError(w, requestID, errors.New(errors.TypeConfig, "no rate catalog loaded"))
		return
	}

	var req QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, requestID, errors.Wrap(errors.TypeInput, "invalid request body", err))
		return
	}

	in, err := req.toInputs()
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	res, err := h.calculator.Calculate(in, snap)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("quote served",
		zap.String("request_id", requestID),
		zap.String("status", string(res.Status)),
		zap.String("grand_total", res.GrandTotal.String()),
		zap.String("catalog", snap.ContentHash),
	)

	writeJSON(w, QuoteResponse{
		RequestID: requestID,
		InputHash: inputHash(in),
		Quote:     res,
		Report: output.NewReport(res, output.ReportMeta{
			Reference:   requestID,
			GeneratedAt: time.Now(),
			CatalogHash: snap.ContentHash,
			Version:     h.version,
		}),
		Catalog: catalogInfo(snap),
	}, http.StatusOK)
}

// HandleRates handles GET /v1/rates. Optional space_type and tenure query
// parameters filter the table; inactive rows are included only with ?all=true.
func (h *Handler) HandleRates(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	snap := h.holder.Current()
	if snap == nil {
		h.writeError(w, requestID, errors.New(errors.TypeConfig, "no rate catalog loaded"))
		return
	}

	q := r.URL.Query()
	includeInactive := q.Get("all") == "true"

	var space types.SpaceType
	if v := q.Get("space_type"); v != "" {
		parsed, err := types.ParseSpaceType(v)
		if err != nil {
			h.writeError(w, requestID, errors.Wrap(errors.TypeInput, "invalid space_type", err))
			return
		}
		space = parsed
	}
	var tenure types.Tenure
	if v := q.Get("tenure"); v != "" {
		parsed, err := types.ParseTenure(v)
		if err != nil {
			h.writeError(w, requestID, errors.Wrap(errors.TypeInput, "invalid tenure", err))
			return
		}
		tenure = parsed
	}

	writeJSON(w, RatesResponse{
		Catalog:  catalogInfo(snap),
		Rates:    snap.Rates.Filter(space, tenure, includeInactive),
		EWA:      snap.EWA,
		Services: snap.Services,
		Settings: snap.Settings,
	}, http.StatusOK)
}

// HandleService handles GET /v1/services/{id}
func (h *Handler) HandleService(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	snap := h.holder.Current()
	if snap == nil {
		h.writeError(w, requestID, errors.New(errors.TypeConfig, "no rate catalog loaded"))
		return
	}

	id := chi.URLParam(r, "id")
	svc, ok := snap.ServiceByID(id)
	if !ok {
		h.writeError(w, requestID, errors.NotFound("service", id))
		return
	}
	writeJSON(w, ServiceResponse{Catalog: catalogInfo(snap), Service: svc}, http.StatusOK)
}

// HandleHealth handles GET /health. Unhealthy until a catalog is loaded; a
// failed scheduled reload reports "degraded" while the previous snapshot
// keeps serving.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	if h.refresh != nil {
		at, err := h.refresh()
		info := &RefreshInfo{}
		if !at.IsZero() {
			at = at.UTC()
			info.LastCheck = &at
		}
		if err != nil {
			info.Error = err.Error()
			resp.Status = "degraded"
		}
		resp.Refresh = info
	}

	snap := h.holder.Current()
	if snap == nil {
		resp.Status = "no_catalog"
		writeJSON(w, resp, http.StatusServiceUnavailable)
		return
	}
	info := catalogInfo(snap)
	resp.Catalog = &info
	writeJSON(w, resp, http.StatusOK)
}

// HandleVersion handles GET /version
func (h *Handler) HandleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version":     h.version,
		"engine":      "warehouse-quote",
		"api_version": "v1",
	}, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, requestID string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("request_id", requestID), zap.Error(err))
	}

	code := string(errors.TypeOf(err))
	if code == "" {
		code = string(errors.TypeInternal)
	}
	writeJSON(w, ErrorResponse{
		RequestID: requestID,
		Error:     ErrorDetail{Code: code, Message: err.Error()},
	}, status)
}

// statusFor maps error types to HTTP status codes
func statusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.TypeInput:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	case errors.TypeConfig, errors.TypeCatalog, errors.TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
