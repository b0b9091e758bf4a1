// Package api - API types for warehouse quotes
// These types define the contract for the /v1 endpoints.
// The API is stateless and deterministic for a given catalog snapshot.
package api

import (
	"time"

	"github.com/shopspring/decimal"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/determinism"
	"warehouse-quote/core/output"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

// QuoteRequest is the input to POST /v1/quotes.
// Enum fields accept the canonical snake_case values and common spellings.
type QuoteRequest struct {
	SpaceType       string          `json:"space_type"`
	Area            decimal.Decimal `json:"area"`
	Tenure          string          `json:"tenure"`
	Duration        int             `json:"duration"`
	IncludeOffice   bool            `json:"include_office,omitempty"`
	Utilities       string          `json:"utilities,omitempty"`
	Services        []string        `json:"services,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountFixed   decimal.Decimal `json:"discount_fixed,omitempty"`
}

// toInputs parses enum strings at the boundary
func (r *QuoteRequest) toInputs() (types.CalculationInputs, error) {
	space, err := types.ParseSpaceType(r.SpaceType)
	if err != nil {
		return types.CalculationInputs{}, errors.Wrap(errors.TypeInput, "invalid space_type", err)
	}
	tenure, err := types.ParseTenure(r.Tenure)
	if err != nil {
		return types.CalculationInputs{}, errors.Wrap(errors.TypeInput, "invalid tenure", err)
	}
	utilities, err := types.ParseUtilitiesMode(r.Utilities)
	if err != nil {
		return types.CalculationInputs{}, errors.Wrap(errors.TypeInput, "invalid utilities", err)
	}

	return types.CalculationInputs{
		SpaceType:          space,
		AreaRequested:      r.Area,
		Tenure:             tenure,
		DurationValue:      r.Duration,
		IncludeOffice:      r.IncludeOffice,
		UtilitiesMode:      utilities,
		SelectedServiceIDs: r.Services,
		PercentDiscount:    r.DiscountPercent,
		FixedDiscount:      r.DiscountFixed,
	}, nil
}

// QuoteResponse is the output of POST /v1/quotes
type QuoteResponse struct {
	RequestID string                  `json:"request_id"`
	InputHash string                  `json:"input_hash"`
	Quote     types.CalculationResult `json:"quote"`
	Report    *output.Report          `json:"report"`
	Catalog   CatalogInfo             `json:"catalog"`
}

// CatalogInfo identifies the snapshot that served a request
type CatalogInfo struct {
	Source   string    `json:"source"`
	Hash     string    `json:"hash"`
	LoadedAt time.Time `json:"loaded_at"`
}

func catalogInfo(s *core.Snapshot) CatalogInfo {
	return CatalogInfo{Source: s.Source, Hash: s.ContentHash, LoadedAt: s.LoadedAt}
}

// RatesResponse is the output of GET /v1/rates
type RatesResponse struct {
	Catalog  CatalogInfo             `json:"catalog"`
	Rates    []types.TieredRate      `json:"rates"`
	EWA      types.EWASettings       `json:"ewa"`
	Services []types.OptionalService `json:"services"`
	Settings types.SystemSettings    `json:"settings"`
}

// ServiceResponse is the output of GET /v1/services/{id}
type ServiceResponse struct {
	Catalog CatalogInfo           `json:"catalog"`
	Service types.OptionalService `json:"service"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the output of GET /health
type HealthResponse struct {
	Status  string       `json:"status"`
	Version string       `json:"version"`
	Time    string       `json:"time"`
	Catalog *CatalogInfo `json:"catalog,omitempty"`
	Refresh *RefreshInfo `json:"refresh,omitempty"`
}

// RefreshInfo reports the most recent scheduled catalog reload
type RefreshInfo struct {
	LastCheck *time.Time `json:"last_check,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// inputHash identifies parsed inputs; equal hashes on the same catalog hash
// produce identical quotes
func inputHash(in types.CalculationInputs) string {
	h, _ := determinism.HashJSON(in)
	return h.Hex()
}
