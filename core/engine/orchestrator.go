package engine

import (
	"go.uber.org/zap"

	"warehouse-quote/core/catalog"
	"warehouse-quote/core/pricing"
	"warehouse-quote/core/suggestion"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

// Calculator prices quotes against a snapshot.
// It holds no state between calls and is safe for concurrent use.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a calculator. A nil logger disables logging.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger.Named("engine")}
}

// Calculate produces a quote: validation, term normalization, rate resolution
// and composition, then suggestions for priced quotes only. The snapshot is
// read, never written; callers refreshing catalogs concurrently must pass a
// snapshot they will not mutate.
func (c *Calculator) Calculate(in types.CalculationInputs, snap *catalog.Snapshot) (types.CalculationResult, error) {
	if snap == nil || snap.Rates == nil {
		return types.CalculationResult{}, errors.New(errors.TypeConfig, "no rate catalog loaded")
	}
	if err := ValidateInputs(in); err != nil {
		return types.CalculationResult{}, err
	}

	norm := pricing.NormalizeInputs(in)
	if norm.DurationAdjusted {
		c.logger.Debug("duration normalized",
			zap.String("tenure", in.Tenure.String()),
			zap.Int("requested", in.DurationValue),
			zap.Int("periods", norm.PeriodCount),
		)
	}

	var ratePtr *types.TieredRate
	rate, found := pricing.Resolve(norm.SpaceType, norm.AreaRequested, norm.Tenure, snap.Rates)
	if found {
		ratePtr = &rate
	} else if norm.AreaRequested.IsPositive() {
		c.logger.Info("no rate for request",
			zap.String("space_type", norm.SpaceType.String()),
			zap.String("tenure", norm.Tenure.String()),
			zap.String("area", norm.AreaRequested.String()),
			zap.String("snapshot", snap.ContentHash),
		)
	}

	res, err := Compose(norm, ratePtr, snap.EWA, snap.Services, snap.Settings)
	if err != nil {
		c.logger.Error("quote composition failed", zap.Error(err))
		return types.CalculationResult{}, err
	}

	if res.IsPriced() {
		res.Suggestions = suggestion.Suggest(norm, rate, res.WarehouseRentPerPeriod, snap.Rates)
	}

	c.logger.Debug("quote calculated",
		zap.String("status", string(res.Status)),
		zap.String("band", res.AreaBand),
		zap.String("grand_total", res.GrandTotal.String()),
		zap.Int("suggestions", len(res.Suggestions)),
	)
	return res, nil
}

// ValidateInputs rejects requests that cannot reach the resolver
func ValidateInputs(in types.CalculationInputs) error {
	if !in.SpaceType.IsValid() {
		return errors.Inputf("unknown space type %q", in.SpaceType)
	}
	if !in.Tenure.IsValid() {
		return errors.Inputf("unknown tenure %q", in.Tenure)
	}
	if in.UtilitiesMode != "" && !in.UtilitiesMode.IsValid() {
		return errors.Inputf("unknown utilities mode %q", in.UtilitiesMode)
	}
	if in.PercentDiscount.IsNegative() || in.PercentDiscount.GreaterThan(hundred) {
		return errors.Inputf("percent discount %s is outside 0-100", in.PercentDiscount)
	}
	if in.FixedDiscount.IsNegative() {
		return errors.Inputf("fixed discount %s is negative", in.FixedDiscount)
	}
	if limit := pricing.MaxDuration(in.Tenure); in.DurationValue > limit {
		return errors.Inputf("duration %d exceeds the %s limit of %d", in.DurationValue, in.Tenure, limit)
	}
	return nil
}
