package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"warehouse-quote/core/types"
)

// CurrencyDecimals is the number of places BHD amounts are rendered with
const CurrencyDecimals = 3

// AreaDecimals is the number of places areas are rendered with
const AreaDecimals = 1

// FormatCurrency renders an amount as "<amount to 3 places> BHD"
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(CurrencyDecimals) + " " + types.CurrencyBHD.String()
}

// FormatArea renders an area as "<area to 1 place> m²"
func FormatArea(area decimal.Decimal) string {
	return area.StringFixed(AreaDecimals) + " m²"
}

// FormatRate renders a per-area rate, e.g. "2.500 BHD/m²/month"
func FormatRate(rate decimal.Decimal, unit types.PeriodUnit) string {
	return FormatCurrency(rate) + "/m²/" + unit.String()
}

// FormatPeriods renders a period count with its unit, e.g. "6 months"
func FormatPeriods(count int, unit types.PeriodUnit) string {
	if count == 1 {
		return "1 " + unit.String()
	}
	return strconv.Itoa(count) + " " + unit.String() + "s"
}
