package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	boxLabelWidth  = 44
	boxAmountWidth = 26
	boxInnerWidth  = boxLabelWidth + boxAmountWidth + 1
)

// TextFormatter renders a boxed terminal table
type TextFormatter struct{}

// Format returns FormatText
func (f *TextFormatter) Format() Format {
	return FormatText
}

// Render writes the report as a table
func (f *TextFormatter) Render(w io.Writer, r *Report) error {
	b := &boxWriter{w: w}

	b.rule("┌", "┐")
	b.center(strings.ToUpper(r.Header.Title))
	if r.Header.Reference != "" {
		b.center(r.Header.Reference)
	}
	b.rule("├", "┤")

	b.row("Space", r.Property.SpaceType)
	b.row("Requested area", r.Property.AreaRequested)
	b.row("Chargeable area", r.Property.ChargeableArea)
	b.row("Area band", r.Property.AreaBand)
	b.row("Tenure", r.Property.Tenure)
	b.row("Duration", r.Property.Duration)
	if r.Property.Rate != "" {
		b.row("Rate", r.Property.Rate)
	}
	b.row("Office", r.Property.Office)
	b.row("Utilities", r.Property.Utilities)

	if len(r.Pricing) > 0 {
		b.rule("├", "┤")
		for _, line := range r.Pricing {
			b.row(line.Label, line.Amount)
		}
	}

	b.rule("├", "┤")
	b.row("Per period total", r.Totals.PerPeriod)
	b.row("Subtotal", r.Totals.Subtotal)
	b.row("Discount", r.Totals.Discount)
	if r.Totals.VAT != "" {
		b.row("VAT", r.Totals.VAT)
	}
	b.row("GRAND TOTAL", r.Totals.GrandTotal)

	if len(r.Services) > 0 {
		b.rule("├", "┤")
		b.center("OPTIONAL SERVICES")
		for _, line := range r.Services {
			b.row(line.Label, line.Amount)
		}
	}
	b.rule("└", "┘")

	if len(r.Suggestions) > 0 {
		b.printf("\nSuggestions:\n")
		for _, s := range r.Suggestions {
			b.printf("  • %s\n", s)
		}
	}
	if len(r.Footer.Notes) > 0 {
		b.printf("\n")
		for _, n := range r.Footer.Notes {
			b.printf("Note: %s\n", n)
		}
	}
	if r.Footer.CatalogHash != "" {
		b.printf("\nCatalog: %s\n", truncate(r.Footer.CatalogHash, 16))
	}

	return b.err
}

// boxWriter keeps the first write error
type boxWriter struct {
	w   io.Writer
	err error
}

func (b *boxWriter) printf(format string, args ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.w, format, args...)
}

func (b *boxWriter) rule(left, right string) {
	b.printf("%s%s%s\n", left, strings.Repeat("─", boxInnerWidth+2), right)
}

func (b *boxWriter) row(label, amount string) {
	b.printf("│ %-*s %*s │\n", boxLabelWidth, truncate(label, boxLabelWidth), boxAmountWidth, truncate(amount, boxAmountWidth))
}

func (b *boxWriter) center(s string) {
	s = truncate(s, boxInnerWidth)
	pad := boxInnerWidth - len([]rune(s))
	b.printf("│ %s%s%s │\n", strings.Repeat(" ", pad/2), s, strings.Repeat(" ", pad-pad/2))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
