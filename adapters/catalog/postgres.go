package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	// PostgreSQL driver
	_ "github.com/lib/pq"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/config"
	"warehouse-quote/internal/errors"
)

// Read-only catalog queries. Rate order is table order for first-match resolution.
const (
	queryRates = `
		SELECT space_type, area_band_label, area_min, area_max, tenure,
		       monthly_rate_per_area, daily_rate_per_area, min_chargeable_area,
		       package_starting_price, active
		FROM warehouse_rates
		ORDER BY sort_order, id`

	queryEWA = `
		SELECT house_load_description, dedicated_meter_description, deposit_amount, installation_fee
		FROM ewa_settings
		ORDER BY id
		LIMIT 1`

	queryServices = `
		SELECT id, name, COALESCE(description, ''), pricing_mode, COALESCE(rate, 0), COALESCE(unit, ''), is_free
		FROM optional_services
		WHERE active
		ORDER BY sort_order, id`

	querySettings = `SELECT key, value FROM system_settings`
)

// PostgresSource reads the catalog tables in one read-only transaction
type PostgresSource struct {
	db      *sql.DB
	timeout time.Duration
	logger  *zap.Logger
}

// OpenPostgres opens a connection pool. The connection is verified on first load.
func OpenPostgres(dsn string, timeout time.Duration, logger *zap.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Config("failed to open catalog database", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return NewPostgresSource(db, timeout, logger), nil
}

// NewPostgresSource wraps an existing pool
func NewPostgresSource(db *sql.DB, timeout time.Duration, logger *zap.Logger) *PostgresSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PostgresSource{db: db, timeout: timeout, logger: logger.Named("catalog.postgres")}
}

// Name returns the source name
func (s *PostgresSource) Name() string {
	return "postgres"
}

// DB exposes the pool for schema migrations
func (s *PostgresSource) DB() *sql.DB {
	return s.db
}

// Close releases the pool
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Load reads every catalog table inside a single read-only transaction
func (s *PostgresSource) Load(ctx context.Context) (*core.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, errors.Unavailable("failed to begin catalog transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	rates, err := loadRates(ctx, tx)
	if err != nil {
		return nil, err
	}
	table, err := core.NewRateTable(rates)
	if err != nil {
		return nil, err
	}

	ewa, err := loadEWA(ctx, tx)
	if err != nil {
		return nil, err
	}
	services, err := loadServices(ctx, tx)
	if err != nil {
		return nil, err
	}
	raw, err := loadSettings(ctx, tx)
	if err != nil {
		return nil, err
	}
	settings, err := config.ParseSystemSettings(raw)
	if err != nil {
		return nil, err
	}

	snap := core.NewSnapshot(table, ewa, services, settings, s.Name())
	s.logger.Info("catalog loaded",
		zap.Int("rates", table.Len()),
		zap.Int("services", len(services)),
		zap.String("hash", snap.ContentHash),
		zap.Duration("duration", time.Since(start)),
	)
	return snap, nil
}

// rateRow mirrors one warehouse_rates row
type rateRow struct {
	SpaceType            string
	Band                 string
	AreaMin              decimal.Decimal
	AreaMax              decimal.NullDecimal
	Tenure               string
	MonthlyRate          decimal.Decimal
	DailyRate            decimal.Decimal
	MinChargeableArea    decimal.Decimal
	PackageStartingPrice decimal.NullDecimal
	Active               bool
}

func (r rateRow) toRate() (types.TieredRate, error) {
	space, err := types.ParseSpaceType(r.SpaceType)
	if err != nil {
		return types.TieredRate{}, err
	}
	tenure, err := types.ParseTenure(r.Tenure)
	if err != nil {
		return types.TieredRate{}, err
	}

	rate := types.TieredRate{
		SpaceType:          space,
		AreaBandLabel:      r.Band,
		AreaMin:            r.AreaMin,
		Tenure:             tenure,
		MonthlyRatePerArea: r.MonthlyRate,
		DailyRatePerArea:   r.DailyRate,
		MinChargeableArea:  r.MinChargeableArea,
		Active:             r.Active,
	}
	if r.AreaMax.Valid {
		upper := r.AreaMax.Decimal
		rate.AreaMax = &upper
	}
	if r.PackageStartingPrice.Valid {
		p := r.PackageStartingPrice.Decimal
		rate.PackageStartingPrice = &p
	}
	return rate, nil
}

func loadRates(ctx context.Context, tx *sql.Tx) ([]types.TieredRate, error) {
	rows, err := tx.QueryContext(ctx, queryRates)
	if err != nil {
		return nil, errors.Catalog("failed to query rates", err)
	}
	defer rows.Close()

	var rates []types.TieredRate
	for rows.Next() {
		var r rateRow
		if err := rows.Scan(&r.SpaceType, &r.Band, &r.AreaMin, &r.AreaMax, &r.Tenure,
			&r.MonthlyRate, &r.DailyRate, &r.MinChargeableArea, &r.PackageStartingPrice, &r.Active); err != nil {
			return nil, errors.Catalog("failed to scan rate", err)
		}
		rate, err := r.toRate()
		if err != nil {
			return nil, errors.Catalog(fmt.Sprintf("rate %q", r.Band), err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Catalog("failed to read rates", err)
	}
	return rates, nil
}

func loadEWA(ctx context.Context, tx *sql.Tx) (types.EWASettings, error) {
	var e types.EWASettings
	err := tx.QueryRowContext(ctx, queryEWA).Scan(
		&e.HouseLoadDescription, &e.DedicatedMeterDescription, &e.DepositAmount, &e.InstallationFee)
	if err == sql.ErrNoRows {
		return types.EWASettings{}, errors.Catalog("ewa_settings is empty", nil)
	}
	if err != nil {
		return types.EWASettings{}, errors.Catalog("failed to query ewa settings", err)
	}
	return e, nil
}

func loadServices(ctx context.Context, tx *sql.Tx) ([]types.OptionalService, error) {
	rows, err := tx.QueryContext(ctx, queryServices)
	if err != nil {
		return nil, errors.Catalog("failed to query services", err)
	}
	defer rows.Close()

	var services []types.OptionalService
	for rows.Next() {
		var svc types.OptionalService
		var mode string
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &mode, &svc.Rate, &svc.Unit, &svc.IsFree); err != nil {
			return nil, errors.Catalog("failed to scan service", err)
		}
		svc.PricingMode = types.ServicePricingMode(mode)
		if !svc.PricingMode.IsValid() {
			return nil, errors.Catalog(fmt.Sprintf("service %q has unknown pricing mode %q", svc.ID, mode), nil)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Catalog("failed to read services", err)
	}
	return services, nil
}

func loadSettings(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, querySettings)
	if err != nil {
		return nil, errors.Catalog("failed to query system settings", err)
	}
	defer rows.Close()

	raw := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, errors.Catalog("failed to scan system setting", err)
		}
		raw[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Catalog("failed to read system settings", err)
	}
	return raw, nil
}
