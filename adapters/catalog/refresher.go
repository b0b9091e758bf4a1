package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	core "warehouse-quote/core/catalog"
)

// Refresher reloads the catalog on a cron schedule and swaps it into a holder.
// A failed reload keeps the previous snapshot.
type Refresher struct {
	source  Source
	holder  *core.Holder
	cron    *cron.Cron
	logger  *zap.Logger
	timeout time.Duration

	mu        sync.Mutex
	lastErr   error
	lastCheck time.Time
}

// NewRefresher creates a refresher. Start must be called to schedule it.
func NewRefresher(source Source, holder *core.Holder, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("catalog.refresher")
	cronLog := cronLogger{logger.Sugar()}

	return &Refresher{
		source:  source,
		holder:  holder,
		cron:    cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)), cron.WithLogger(cronLog)),
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// Start schedules reloads using a standard five-field cron expression
func (r *Refresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("catalog refresh scheduled", zap.String("schedule", schedule), zap.String("source", r.source.Name()))
	return nil
}

// Stop halts the schedule; the returned context is done when a running reload finishes
func (r *Refresher) Stop() context.Context {
	return r.cron.Stop()
}

// Refresh reloads once. On success the holder gets the new snapshot unless its
// content hash is unchanged.
func (r *Refresher) Refresh(ctx context.Context) error {
	snap, err := r.source.Load(ctx)

	r.mu.Lock()
	r.lastErr = err
	r.lastCheck = time.Now()
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("catalog reload failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	if cur := r.holder.Current(); cur != nil && cur.ContentHash == snap.ContentHash {
		r.logger.Debug("catalog unchanged", zap.String("hash", snap.ContentHash))
		return nil
	}
	r.holder.Swap(snap)
	r.logger.Info("catalog swapped", zap.String("hash", snap.ContentHash), zap.Int("rates", snap.Rates.Len()))
	return nil
}

// LastResult reports the outcome of the most recent reload
func (r *Refresher) LastResult() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastCheck, r.lastErr
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_ = r.Refresh(ctx)
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
