package config

import (
	"strings"

	"github.com/shopspring/decimal"

	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

// System setting keys as stored with the catalog
const (
	KeyOfficeMonthlyRate       = "office_monthly_rate"
	KeyMinimumCharge           = "minimum_charge"
	KeyDaysPerMonth            = "days_per_month"
	KeyOfficeFreeAreaThreshold = "office_free_area_threshold"
	KeyVATPercent              = "vat_percent"
)

// RequiredSettingKeys must be present in every catalog
var RequiredSettingKeys = []string{
	KeyOfficeMonthlyRate,
	KeyMinimumCharge,
	KeyDaysPerMonth,
	KeyOfficeFreeAreaThreshold,
}

// ParseSystemSettings converts the stored key/value map into SystemSettings.
// It fails on the first missing or unparsable required key; there are no defaults
// for business values. vat_percent is optional and defaults to zero.
func ParseSystemSettings(raw map[string]string) (types.SystemSettings, error) {
	var s types.SystemSettings
	var err error

	if s.OfficeMonthlyRate, err = required(raw, KeyOfficeMonthlyRate); err != nil {
		return types.SystemSettings{}, err
	}
	if s.MinimumCharge, err = required(raw, KeyMinimumCharge); err != nil {
		return types.SystemSettings{}, err
	}
	if s.DaysPerMonth, err = required(raw, KeyDaysPerMonth); err != nil {
		return types.SystemSettings{}, err
	}
	if !s.DaysPerMonth.IsPositive() {
		return types.SystemSettings{}, errors.InvalidSetting(KeyDaysPerMonth, raw[KeyDaysPerMonth], nil)
	}
	if s.OfficeFreeAreaThreshold, err = required(raw, KeyOfficeFreeAreaThreshold); err != nil {
		return types.SystemSettings{}, err
	}

	if v, ok := raw[KeyVATPercent]; ok && strings.TrimSpace(v) != "" {
		if s.VATPercent, err = parse(KeyVATPercent, v); err != nil {
			return types.SystemSettings{}, err
		}
		if s.VATPercent.GreaterThan(decimal.NewFromInt(100)) {
			return types.SystemSettings{}, errors.InvalidSetting(KeyVATPercent, v, nil)
		}
	}

	return s, nil
}

func required(raw map[string]string, key string) (decimal.Decimal, error) {
	v, ok := raw[key]
	if !ok || strings.TrimSpace(v) == "" {
		return decimal.Zero, errors.MissingSetting(key)
	}
	return parse(key, v)
}

func parse(key, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, errors.InvalidSetting(key, v, err)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.InvalidSetting(key, v, nil)
	}
	return d, nil
}
