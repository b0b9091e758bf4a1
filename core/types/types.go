// Package types defines core domain types shared across all layers.
// This package contains NO business logic beyond enum parsing and small
// value helpers.
package types

import (
	"fmt"
	"strings"
)

// SpaceType identifies the kind of warehouse floor space being rented
type SpaceType string

const (
	SpaceGroundFloor SpaceType = "ground_floor"
	SpaceMezzanine   SpaceType = "mezzanine"
)

// String returns the string representation of the space type
func (s SpaceType) String() string {
	return string(s)
}

// IsValid checks if the space type is known
func (s SpaceType) IsValid() bool {
	switch s {
	case SpaceGroundFloor, SpaceMezzanine:
		return true
	default:
		return false
	}
}

// Label returns a human-readable name
func (s SpaceType) Label() string {
	switch s {
	case SpaceGroundFloor:
		return "Ground Floor"
	case SpaceMezzanine:
		return "Mezzanine"
	default:
		return string(s)
	}
}

// ParseSpaceType converts a boundary string into a SpaceType.
// Accepts the canonical snake_case form and a few common spellings.
func ParseSpaceType(s string) (SpaceType, error) {
	switch normalizeEnum(s) {
	case "ground_floor", "groundfloor", "ground":
		return SpaceGroundFloor, nil
	case "mezzanine", "mezz":
		return SpaceMezzanine, nil
	}
	return "", fmt.Errorf("unknown space type %q", s)
}

// Tenure is the contract length class of a lease
type Tenure string

const (
	// TenureVeryShort is billed daily
	TenureVeryShort Tenure = "very_short"

	// TenureShort is billed monthly, under twelve months
	TenureShort Tenure = "short"

	// TenureLong is billed monthly, twelve months or more
	TenureLong Tenure = "long"
)

// String returns the string representation of the tenure
func (t Tenure) String() string {
	return string(t)
}

// IsValid checks if the tenure is known
func (t Tenure) IsValid() bool {
	switch t {
	case TenureVeryShort, TenureShort, TenureLong:
		return true
	default:
		return false
	}
}

// Label returns a human-readable name
func (t Tenure) Label() string {
	switch t {
	case TenureVeryShort:
		return "Very Short Term"
	case TenureShort:
		return "Short Term"
	case TenureLong:
		return "Long Term"
	default:
		return string(t)
	}
}

// ParseTenure converts a boundary string into a Tenure
func ParseTenure(s string) (Tenure, error) {
	switch normalizeEnum(s) {
	case "very_short", "veryshort":
		return TenureVeryShort, nil
	case "short":
		return TenureShort, nil
	case "long":
		return TenureLong, nil
	}
	return "", fmt.Errorf("unknown tenure %q", s)
}

// PeriodUnit is the billing period of a normalized duration
type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "day"
	PeriodMonth PeriodUnit = "month"
)

// String returns the string representation of the unit
func (u PeriodUnit) String() string {
	return string(u)
}

// UtilitiesMode is how electricity and water (EWA) are billed
type UtilitiesMode string

const (
	// UtilitiesHouseLoad bundles utilities into rent
	UtilitiesHouseLoad UtilitiesMode = "house_load"

	// UtilitiesDedicatedMeter bills utilities separately with one-off setup costs
	UtilitiesDedicatedMeter UtilitiesMode = "dedicated_meter"
)

// String returns the string representation of the mode
func (m UtilitiesMode) String() string {
	return string(m)
}

// IsValid checks if the utilities mode is known
func (m UtilitiesMode) IsValid() bool {
	return m == UtilitiesHouseLoad || m == UtilitiesDedicatedMeter
}

// Label returns the display name of the mode
func (m UtilitiesMode) Label() string {
	if m == UtilitiesDedicatedMeter {
		return "Dedicated meter"
	}
	return "House load"
}

// ParseUtilitiesMode converts a boundary string into a UtilitiesMode.
// An empty string means house load.
func ParseUtilitiesMode(s string) (UtilitiesMode, error) {
	switch normalizeEnum(s) {
	case "", "house_load", "houseload":
		return UtilitiesHouseLoad, nil
	case "dedicated_meter", "dedicatedmeter", "dedicated":
		return UtilitiesDedicatedMeter, nil
	}
	return "", fmt.Errorf("unknown utilities mode %q", s)
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
