package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"warehouse-quote/adapters/catalog"
	core "warehouse-quote/core/catalog"
	"warehouse-quote/internal/errors"
)

const shippedCatalog = "../../../config/catalog.hcl"

func loadShipped(t *testing.T) *core.Snapshot {
	t.Helper()
	snap, err := catalog.NewHCLSource(shippedCatalog, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return snap
}

func TestRunQuoteText(t *testing.T) {
	snap := loadShipped(t)
	var buf bytes.Buffer

	opts := quoteOptions{
		space: "ground_floor", area: "120", tenure: "short", duration: 6,
		utilities: "house_load", format: "text",
	}
	if err := runQuote(&buf, opts, snap); err != nil {
		t.Fatalf("runQuote: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"WAREHOUSE RENTAL QUOTE", "GRAND TOTAL", "BHD", "WQ-"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunQuoteJSON(t *testing.T) {
	snap := loadShipped(t)
	var buf bytes.Buffer

	opts := quoteOptions{
		space: "mezzanine", area: "50", tenure: "very_short", duration: 10,
		utilities: "house_load", format: "json",
	}
	if err := runQuote(&buf, opts, snap); err != nil {
		t.Fatalf("runQuote: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := decoded["totals"]; !ok {
		t.Errorf("JSON report has no totals: %s", buf.String())
	}
}

func TestRunQuoteInputErrors(t *testing.T) {
	snap := loadShipped(t)
	base := quoteOptions{space: "ground_floor", area: "100", tenure: "short", duration: 1, utilities: "house_load", format: "text"}

	tests := []struct {
		name   string
		mutate func(*quoteOptions)
	}{
		{"bad space", func(o *quoteOptions) { o.space = "roof" }},
		{"bad tenure", func(o *quoteOptions) { o.tenure = "weekly" }},
		{"bad utilities", func(o *quoteOptions) { o.utilities = "solar" }},
		{"bad area", func(o *quoteOptions) { o.area = "ten" }},
		{"bad discount", func(o *quoteOptions) { o.discountPercent = "x" }},
		{"bad format", func(o *quoteOptions) { o.format = "xml" }},
		{"discount over 100", func(o *quoteOptions) { o.discountPercent = "150" }},
		{"duration too long", func(o *quoteOptions) { o.duration = 1201 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)
			err := runQuote(&bytes.Buffer{}, opts, snap)
			if !errors.IsType(err, errors.TypeInput) {
				t.Errorf("err = %v, want input error", err)
			}
		})
	}
}

func TestQuoteReferenceIsStable(t *testing.T) {
	snap := loadShipped(t)
	in, err := quoteOptions{space: "ground_floor", area: "80", tenure: "long", duration: 12, utilities: "house_load"}.toInputs()
	if err != nil {
		t.Fatal(err)
	}

	ref := quoteReference(in, snap)
	if !strings.HasPrefix(ref, "WQ-") || ref != quoteReference(in, snap) {
		t.Errorf("reference = %q", ref)
	}
	in.DurationValue = 24
	if quoteReference(in, snap) == ref {
		t.Error("different inputs should change the reference")
	}
}

func TestListRates(t *testing.T) {
	snap := loadShipped(t)

	var all bytes.Buffer
	if err := listRates(&all, snap, "", "", true); err != nil {
		t.Fatal(err)
	}
	var mezz bytes.Buffer
	if err := listRates(&mezz, snap, "mezzanine", "", false); err != nil {
		t.Fatal(err)
	}
	if strings.Count(mezz.String(), "\n") >= strings.Count(all.String(), "\n") {
		t.Error("filtered listing should be shorter than the full listing")
	}
	if strings.Contains(mezz.String(), "ground_floor") {
		t.Errorf("mezzanine filter leaked ground floor rows:\n%s", mezz.String())
	}

	if err := listRates(&bytes.Buffer{}, snap, "", "weekly", false); err == nil {
		t.Error("expected error for unknown tenure filter")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if !strings.Contains(buf.String(), "whquote version "+Version) {
		t.Errorf("version output = %q", buf.String())
	}
}
