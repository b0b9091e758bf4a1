// Package catalog - Authoritative warehouse rate catalog
// Holds the tiered rate table and the settings a quote is computed against.
// A Snapshot is read-only once built; calculations never mutate it.
package catalog

import (
	"time"

	"warehouse-quote/core/determinism"
	"warehouse-quote/core/types"
)

// RateTable is an immutable, ordered list of tiered rates.
// Order is significant: resolution is first-match-wins.
type RateTable struct {
	rates []types.TieredRate
}

// NewRateTable builds a table and rejects it if any validation rule fails
func NewRateTable(rates []types.TieredRate) (*RateTable, error) {
	t := NewUncheckedRateTable(rates)
	if errs := t.Validate(DefaultValidationRules()); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	return t, nil
}

// NewUncheckedRateTable builds a table without validation.
// Used for data that is known to be malformed but must still be priced.
func NewUncheckedRateTable(rates []types.TieredRate) *RateTable {
	cp := make([]types.TieredRate, len(rates))
	copy(cp, rates)
	return &RateTable{rates: cp}
}

// Len returns the number of rates, active or not
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rates)
}

// At returns the rate at position i
func (t *RateTable) At(i int) types.TieredRate {
	return t.rates[i]
}

// Rates returns a copy of all rates in table order
func (t *RateTable) Rates() []types.TieredRate {
	if t == nil {
		return nil
	}
	cp := make([]types.TieredRate, len(t.rates))
	copy(cp, t.rates)
	return cp
}

// Each calls fn for every rate in table order until fn returns false
func (t *RateTable) Each(fn func(types.TieredRate) bool) {
	if t == nil {
		return
	}
	for _, r := range t.rates {
		if !fn(r) {
			return
		}
	}
}

// Filter returns the rates for a space type and tenure, in table order. An
// empty space type or tenure matches every value. Inactive rates are included
// only when includeInactive is set.
func (t *RateTable) Filter(space types.SpaceType, tenure types.Tenure, includeInactive bool) []types.TieredRate {
	out := []types.TieredRate{}
	t.Each(func(r types.TieredRate) bool {
		if (space == "" || r.SpaceType == space) &&
			(tenure == "" || r.Tenure == tenure) &&
			(r.Active || includeInactive) {
			out = append(out, r)
		}
		return true
	})
	return out
}

// Snapshot is everything a quote is computed against, captured at one instant
type Snapshot struct {
	Rates    *RateTable
	EWA      types.EWASettings
	Services []types.OptionalService
	Settings types.SystemSettings

	// Source describes where the snapshot was loaded from
	Source string

	// LoadedAt is when the snapshot was built
	LoadedAt time.Time

	// ContentHash is a SHA-256 of the pricing data
	ContentHash string
}

// NewSnapshot assembles a snapshot and computes its content hash
func NewSnapshot(rates *RateTable, ewa types.EWASettings, services []types.OptionalService, settings types.SystemSettings, source string) *Snapshot {
	svc := make([]types.OptionalService, len(services))
	copy(svc, services)

	s := &Snapshot{
		Rates:    rates,
		EWA:      ewa,
		Services: svc,
		Settings: settings,
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
	s.ContentHash = s.hash()
	return s
}

// ServiceByID finds an optional service
func (s *Snapshot) ServiceByID(id string) (types.OptionalService, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return types.OptionalService{}, false
}

func (s *Snapshot) hash() string {
	// decimals and ordered slices encode deterministically
	h, _ := determinism.HashJSON(struct {
		Rates    []types.TieredRate      `json:"rates"`
		EWA      types.EWASettings       `json:"ewa"`
		Services []types.OptionalService `json:"services"`
		Settings types.SystemSettings    `json:"settings"`
	}{s.Rates.Rates(), s.EWA, s.Services, s.Settings})
	return h.Hex()
}
