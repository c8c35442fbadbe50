package pipeline

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giltcli/internal/parse"
	"giltcli/internal/yield"
	"giltcli/pkg/contracts/domain"
)

var settlement = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

func dmoRow(isin, desc, clean, dirty, maturity string) []string {
	return []string{isin, desc, clean, dirty, "", "", "", maturity}
}

func goodRows() [][]string {
	return [][]string{
		dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "07-Jun-2025"),
		dmoRow("GB00BMBL1D50", "4 1/2% Treasury Gilt 2028", "100.90", "102.16", "07-Jun-2028"),
		dmoRow("GB00BLPK7110", "2% Treasury Gilt 2025", "99.00", "99.06", "07-Sep-2025"),
	}
}

func newTestCollector() *Collector {
	return NewCollector(parse.DefaultLayout(), yield.DefaultConfig(), slog.Default())
}

func TestCollectAllRowsSucceed(t *testing.T) {
	rows := goodRows()

	batch, err := newTestCollector().Collect(context.Background(), "DMO", settlement, rows)
	require.NoError(t, err)

	require.Len(t, batch.Bonds, 3)
	assert.Empty(t, batch.Failures)
	assert.Equal(t, "DMO", batch.Source)
	assert.Equal(t, settlement, batch.SettlementDate)

	for _, b := range batch.Bonds {
		assert.Equal(t, domain.StateComplete, b.State)
		assert.Greater(t, b.YieldToMaturity, 0.0)
	}

	// Single-worker mode preserves input row order
	assert.Equal(t, "GB00BMGR2791", batch.Bonds[0].ISIN)
	assert.Equal(t, "GB00BMBL1D50", batch.Bonds[1].ISIN)
	assert.Equal(t, "GB00BLPK7110", batch.Bonds[2].ISIN)
}

func TestCollectContainsPartialFailures(t *testing.T) {
	rows := goodRows()
	rows = append(rows,
		dmoRow("GB00BAD00001", "Floating Rate Gilt 2026", "99.00", "99.10", "07-Jun-2026"),
		dmoRow("GB00BAD00002", "3½% Treasury Gilt 2026", "99.00", "99.10", "not-a-date"),
	)

	batch, err := newTestCollector().Collect(context.Background(), "DMO", settlement, rows)
	require.NoError(t, err)

	// Exactly N-K bonds and K failures, never an early abort
	assert.Len(t, batch.Bonds, 3)
	require.Len(t, batch.Failures, 2)

	assert.Equal(t, 3, batch.Failures[0].Row)
	assert.True(t, domain.IsKind(batch.Failures[0].Err, domain.KindInvalidCoupon))
	assert.Equal(t, 4, batch.Failures[1].Row)
	assert.True(t, domain.IsKind(batch.Failures[1].Err, domain.KindInvalidMaturityDate))
}

func TestCollectSkipsHeaderAndIndexLinkedRows(t *testing.T) {
	rows := [][]string{
		dmoRow("ISIN", "Gilt Name", "Clean Price", "Dirty Price", "Redemption Date"),
	}
	rows = append(rows, goodRows()...)
	rows = append(rows, dmoRow("GB00B3Y1JG82", "0 1/8% Index-linked Treasury Gilt 2029", "98.00", "98.20", "22-Mar-2029"))

	batch, err := newTestCollector().Collect(context.Background(), "DMO", settlement, rows)
	require.NoError(t, err)

	// Header and index-linked rows land in neither result set
	assert.Len(t, batch.Bonds, 3)
	assert.Empty(t, batch.Failures)
}

func TestCollectZeroSuccessesIsDataUnavailable(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{
			name: "empty row set",
			rows: nil,
		},
		{
			name: "only non-data rows",
			rows: [][]string{
				dmoRow("ISIN", "Gilt Name", "Clean Price", "Dirty Price", "Redemption Date"),
			},
		},
		{
			name: "all rows malformed",
			rows: [][]string{
				dmoRow("GB00BAD00001", "Floating Rate Gilt 2026", "99.00", "99.10", "07-Jun-2026"),
				dmoRow("GB00BAD00002", "2% Treasury Gilt 2026", "banana", "banana", "07-Jun-2026"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := newTestCollector().Collect(context.Background(), "DMO", settlement, tt.rows)
			require.Error(t, err)
			assert.Nil(t, batch)
			assert.True(t, domain.IsKind(err, domain.KindDataUnavailable))
		})
	}
}

func TestCollectSolverFailureIsContained(t *testing.T) {
	// A maturity before settlement survives parsing but fails schedule
	// derivation; the row must land in the failure set, not abort the run.
	rows := goodRows()
	rows = append(rows, dmoRow("GB00BMGR2792", "2% Treasury Gilt 2020", "99.00", "99.10", "07-Jun-2020"))

	batch, err := newTestCollector().Collect(context.Background(), "DMO", settlement, rows)
	require.NoError(t, err)

	assert.Len(t, batch.Bonds, 3)
	require.Len(t, batch.Failures, 1)
	assert.True(t, domain.IsKind(batch.Failures[0].Err, domain.KindMaturityBeforeSettlement))
}

func TestCollectParallelMatchesSequential(t *testing.T) {
	rows := goodRows()
	rows = append(rows,
		dmoRow("GB00BAD00001", "Floating Rate Gilt 2026", "99.00", "99.10", "07-Jun-2026"),
	)

	sequential, err := newTestCollector().Collect(context.Background(), "DMO", settlement, rows)
	require.NoError(t, err)

	parallel := newTestCollector()
	parallel.SetWorkers(4)

	got, err := parallel.Collect(context.Background(), "DMO", settlement, rows)
	require.NoError(t, err)

	// Membership matches even though ordering may not
	require.Len(t, got.Bonds, len(sequential.Bonds))
	require.Len(t, got.Failures, len(sequential.Failures))

	wantISINs := make(map[string]bool)
	for _, b := range sequential.Bonds {
		wantISINs[b.ISIN] = true
	}
	for _, b := range got.Bonds {
		assert.True(t, wantISINs[b.ISIN], "unexpected bond %s", b.ISIN)
	}
}
