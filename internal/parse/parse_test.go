package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giltcli/pkg/contracts/domain"
)

var settlement = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

// dmoRow builds a row in the default DMO layout
func dmoRow(isin, desc, clean, dirty, maturity string) []string {
	return []string{isin, desc, clean, dirty, "", "", "", maturity}
}

func TestCouponPercent(t *testing.T) {
	tests := []struct {
		desc string
		want float64
	}{
		{"2% Treasury Gilt 2025", 2},
		{"0 5/8% Treasury Gilt 2025", 0.625},
		{"5/8% Treasury Gilt 2025", 0.625},
		{"4.125% Treasury Gilt 2027", 4.125},
		{"3½% Treasury Gilt 2025", 3.5},
		{"4¼% Treasury Gilt 2034", 4.25},
		{"1¾% Treasury Gilt 2049", 1.75},
		{"0 7/8% Green Gilt 2033", 0.875},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := CouponPercent(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCouponPercentRejectsUnparsableDescriptions(t *testing.T) {
	tests := []string{
		"",
		"Treasury Gilt 2025",
		"x% Treasury Gilt 2025",
		"% Treasury Gilt 2025",
		"2 Treasury Gilt 2025",
	}

	for _, desc := range tests {
		t.Run(desc, func(t *testing.T) {
			_, err := CouponPercent(desc)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidCoupon))
		})
	}
}

func TestRowParsesDataRow(t *testing.T) {
	cells := dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "07-Jun-2025")

	res, err := Row(DefaultLayout(), cells, "DMO", settlement)
	require.NoError(t, err)
	require.True(t, res.OK())

	b := res.Bond
	assert.Equal(t, domain.StateParsed, b.State)
	assert.Equal(t, domain.BondTypeUKGilt, b.Type)
	assert.Equal(t, "DMO", b.Source)
	assert.Equal(t, "GB00BMGR2791", b.ISIN)
	assert.Equal(t, "0 5/8% Treasury Gilt 2025", b.Desc)
	assert.Equal(t, 0.625, b.Coupon)
	assert.Equal(t, 100.0, b.FacePrice)
	assert.Equal(t, 99.28, b.CleanPrice)
	assert.Equal(t, 99.45, b.DirtyPrice)
	assert.Equal(t, time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC), b.MaturityDate)
	assert.Equal(t, settlement, b.SettlementDate)
}

func TestRowSkipsNonDataRows(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
	}{
		{"header row", dmoRow("ISIN", "Description", "Clean", "Dirty", "Maturity")},
		{"footer row", dmoRow("Totals", "", "", "", "")},
		{"empty row", []string{}},
		{"short row", []string{"GB00BMGR2791", "0 5/8% Treasury Gilt 2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Row(DefaultLayout(), tt.cells, "DMO", settlement)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, domain.IsKind(err, domain.KindNotDataRow))
		})
	}
}

func TestRowSkipsIndexLinkedGilts(t *testing.T) {
	tests := []string{
		"0 1/8% Index-linked Treasury Gilt 2029",
		"1 7/8% INDEX-LINKED Treasury Gilt 2027",
	}

	for _, desc := range tests {
		t.Run(desc, func(t *testing.T) {
			cells := dmoRow("GB00B3Y1JG82", desc, "99.28", "99.45", "07-Jun-2029")

			res, err := Row(DefaultLayout(), cells, "DMO", settlement)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, domain.IsKind(err, domain.KindUnsupportedBond))
		})
	}
}

func TestRowRecordsFieldDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		wantKind domain.ErrorKind
	}{
		{
			name:     "unparsable coupon",
			cells:    dmoRow("GB00BMGR2791", "Floating Rate Gilt 2025", "99.28", "99.45", "07-Jun-2025"),
			wantKind: domain.KindInvalidCoupon,
		},
		{
			name:     "non-numeric clean price",
			cells:    dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "n/a", "99.45", "07-Jun-2025"),
			wantKind: domain.KindInvalidCleanPrice,
		},
		{
			name:     "negative clean price",
			cells:    dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "-1.5", "99.45", "07-Jun-2025"),
			wantKind: domain.KindInvalidCleanPrice,
		},
		{
			name:     "non-numeric dirty price",
			cells:    dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "99.28", "", "07-Jun-2025"),
			wantKind: domain.KindInvalidDirtyPrice,
		},
		{
			name:     "unparsable maturity date",
			cells:    dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "June 7th 2025"),
			wantKind: domain.KindInvalidMaturityDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Row(DefaultLayout(), tt.cells, "DMO", settlement)
			require.NoError(t, err)

			assert.False(t, res.OK())
			assert.True(t, domain.IsKind(res.Err(), tt.wantKind))
		})
	}
}

func TestRowFirstErrorWins(t *testing.T) {
	// Coupon is attempted before prices, so its diagnostic is the row
	// error even though the prices are bad too.
	cells := dmoRow("GB00BMGR2791", "Floating Rate Gilt 2025", "n/a", "n/a", "07-Jun-2025")

	res, err := Row(DefaultLayout(), cells, "DMO", settlement)
	require.NoError(t, err)

	assert.True(t, domain.IsKind(res.Err(), domain.KindInvalidCoupon))
	assert.Len(t, res.Diagnostics(), 3)
}

func TestRowKeepsBestEffortBondOnFailure(t *testing.T) {
	cells := dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "not-a-date")

	res, err := Row(DefaultLayout(), cells, "DMO", settlement)
	require.NoError(t, err)
	require.False(t, res.OK())

	// Fields before and after the bad cell are still populated
	assert.Equal(t, "GB00BMGR2791", res.Bond.ISIN)
	assert.Equal(t, 0.625, res.Bond.Coupon)
	assert.Equal(t, 99.28, res.Bond.CleanPrice)
	assert.True(t, res.Bond.MaturityDate.IsZero())
}

func TestRowZeroSettlementDate(t *testing.T) {
	cells := dmoRow("GB00BMGR2791", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "07-Jun-2025")

	res, err := Row(DefaultLayout(), cells, "DMO", time.Time{})
	require.NoError(t, err)

	assert.True(t, domain.IsKind(res.Err(), domain.KindInvalidSettlementDate))
}

func TestRowWithTickerColumn(t *testing.T) {
	layout := Layout{ISIN: 0, Ticker: 1, Desc: 2, CleanPrice: 3, DirtyPrice: 4, MaturityDate: 5}

	res, err := Row(layout, []string{"GB00BMGR2791", "TG25", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "07-Jun-2025"}, "DMO", settlement)
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "TG25", res.Bond.Ticker)

	res, err = Row(layout, []string{"GB00BMGR2791", "  ", "0 5/8% Treasury Gilt 2025", "99.28", "99.45", "07-Jun-2025"}, "DMO", settlement)
	require.NoError(t, err)
	assert.True(t, domain.IsKind(res.Err(), domain.KindInvalidTicker))
}
