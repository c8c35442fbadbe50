package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"giltcli/internal/parse"
	"giltcli/internal/yield"
	"giltcli/pkg/contracts/domain"
)

// Collector applies the completion pipeline to every row of a batch,
// partitioning the outcome into completed bonds and per-row failures.
type Collector struct {
	layout  parse.Layout
	solver  yield.Config
	workers int
	logger  *slog.Logger
}

// NewCollector creates a collector with the given row layout and solver
// settings. The default is the single-worker mode, which preserves input
// row order in both result sets.
func NewCollector(layout parse.Layout, solver yield.Config, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	return &Collector{
		layout:  layout,
		solver:  solver,
		workers: 1,
		logger:  logger,
	}
}

// SetWorkers sets the number of rows processed concurrently. Rows are
// independent, so any count above one only changes the order of the
// result sets, never their contents.
func (c *Collector) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	c.workers = n
}

// Collect runs every row through parse and completion. Failures at any
// stage are recorded against their row and never abort the batch; the
// only batch-level failure is zero completed bonds, reported as
// DataUnavailable even when no individual row produced an error (an empty
// source yields zero rows and zero failures but is still unusable).
func (c *Collector) Collect(ctx context.Context, source string, settlementDate time.Time, rows [][]string) (*domain.CollectedBatch, error) {
	batch := domain.NewCollectedBatch(source, settlementDate)

	if c.workers > 1 {
		c.collectParallel(ctx, batch, rows)
	} else {
		c.collectSequential(batch, rows)
	}

	c.logger.Info("batch collected",
		slog.String("source", source),
		slog.Time("settlement_date", settlementDate),
		slog.Int("rows", len(rows)),
		slog.Int("bonds", len(batch.Bonds)),
		slog.Int("failures", len(batch.Failures)))

	if len(batch.Bonds) == 0 {
		return nil, domain.NewError(domain.KindDataUnavailable)
	}

	return batch, nil
}

func (c *Collector) collectSequential(batch *domain.CollectedBatch, rows [][]string) {
	for i, cells := range rows {
		bond, skipped, err := c.processRow(i, cells, batch.Source, batch.SettlementDate)
		if skipped {
			continue
		}
		if err != nil {
			batch.AddFailure(i, cells, err)
			continue
		}
		batch.AddBond(bond)
	}
}

func (c *Collector) collectParallel(ctx context.Context, batch *domain.CollectedBatch, rows [][]string) {
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, cells := range rows {
		g.Go(func() error {
			bond, skipped, err := c.processRow(i, cells, batch.Source, batch.SettlementDate)
			if skipped {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				batch.AddFailure(i, cells, err)
			} else {
				batch.AddBond(bond)
			}

			return nil
		})
	}

	// Row workers never return errors; failures live in the batch
	_ = g.Wait()
}

// processRow parses and completes one row. skipped is true for the row
// categories that belong in neither result set.
func (c *Collector) processRow(row int, cells []string, source string, settlementDate time.Time) (domain.Bond, bool, error) {
	res, err := parse.Row(c.layout, cells, source, settlementDate)
	if err != nil {
		if domain.IsKind(err, domain.KindUnsupportedBond) {
			c.logger.Debug("skipping unsupported bond", slog.Int("row", row))
		}
		return domain.Bond{}, true, nil
	}

	if rowErr := res.Err(); rowErr != nil {
		c.logger.Debug("row failed validation",
			slog.Int("row", row),
			slog.String("isin", res.Bond.ISIN),
			slog.String("error", rowErr.Error()))
		return domain.Bond{}, false, wrapRow(rowErr, row)
	}

	bond, err := Complete(res.Bond, c.solver)
	if err != nil {
		c.logger.Debug("bond completion failed",
			slog.Int("row", row),
			slog.String("isin", bond.ISIN),
			slog.String("error", err.Error()))
		return domain.Bond{}, false, wrapRow(err, row)
	}

	return bond, false, nil
}

// wrapRow annotates a pipeline error with its source row index
func wrapRow(err error, row int) error {
	var e *domain.Error
	if errors.As(err, &e) {
		return e.WithRow(row)
	}
	return err
}
