package parse

import (
	"strconv"
	"strings"
	"time"

	"giltcli/pkg/contracts/domain"
)

// MaturityDateFormat is the fixed text format of maturity dates in the
// source rows
const MaturityDateFormat = "02-Jan-2006"

// isinPrefix gates data rows: gilt ISINs are GB-prefixed, anything else in
// the first cell is a header, footer or section row
const isinPrefix = "GB"

// unsupportedMarker flags instrument categories this pipeline does not
// price (index-linked gilts have RPI-dependent cash flows)
const unsupportedMarker = "index-linked"

// Field names attached to validation errors
const (
	fieldISIN         = "isin"
	fieldTicker       = "ticker"
	fieldDesc         = "desc"
	fieldCleanPrice   = "clean_price"
	fieldDirtyPrice   = "dirty_price"
	fieldMaturityDate = "maturity_date"
	fieldSettlement   = "settlement_date"
)

// Layout maps the fixed column positions of a source row. Positions are
// configuration constants, never inferred from the data. A negative index
// marks a column the source does not carry.
type Layout struct {
	ISIN         int `yaml:"isin" envconfig:"ISIN" default:"0" validate:"gte=0"`
	Desc         int `yaml:"desc" envconfig:"DESC" default:"1" validate:"gte=0"`
	CleanPrice   int `yaml:"clean_price" envconfig:"CLEAN_PRICE" default:"2" validate:"gte=0"`
	DirtyPrice   int `yaml:"dirty_price" envconfig:"DIRTY_PRICE" default:"3" validate:"gte=0"`
	MaturityDate int `yaml:"maturity_date" envconfig:"MATURITY_DATE" default:"7" validate:"gte=0"`
	Ticker       int `yaml:"ticker" envconfig:"TICKER" default:"-1"`
}

// DefaultLayout returns the column layout of the DMO daily prices report
func DefaultLayout() Layout {
	return Layout{
		ISIN:         0,
		Desc:         1,
		CleanPrice:   2,
		DirtyPrice:   3,
		MaturityDate: 7,
		Ticker:       -1,
	}
}

// width returns the minimum number of cells a row needs to cover every
// mapped column
func (l Layout) width() int {
	max := l.ISIN
	for _, idx := range []int{l.Desc, l.CleanPrice, l.DirtyPrice, l.MaturityDate, l.Ticker} {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// Result is the outcome of parsing one row: the best-effort bond plus any
// field diagnostics collected along the way. All fields are attempted even
// after the first failure so the partial bond stays useful for debugging,
// but the row only counts as parsed when no diagnostic was recorded.
type Result struct {
	Bond  domain.Bond
	diags []*domain.Error
}

// OK reports whether the row parsed without any field diagnostics
func (r *Result) OK() bool {
	return len(r.diags) == 0
}

// Err returns the first diagnostic recorded for the row, or nil
func (r *Result) Err() error {
	if len(r.diags) == 0 {
		return nil
	}
	return r.diags[0]
}

// Diagnostics returns every field diagnostic recorded for the row, in the
// order the fields were attempted
func (r *Result) Diagnostics() []*domain.Error {
	return r.diags
}

func (r *Result) report(kind domain.ErrorKind, field string) {
	r.diags = append(r.diags, domain.FieldError(kind, field))
}

// Row converts one raw source row into a provisional bond.
//
// Non-data rows (first cell lacking the gilt ISIN prefix, or too few
// cells) and unsupported instruments (index-linked gilts) are rejected
// with a kind-tagged error and a nil Result; neither counts as a
// validation failure. Every other row yields a Result whose diagnostics
// decide whether it parsed cleanly.
func Row(layout Layout, cells []string, source string, settlementDate time.Time) (*Result, error) {
	if len(cells) < layout.width() {
		return nil, domain.NewError(domain.KindNotDataRow)
	}

	isin := strings.TrimSpace(cells[layout.ISIN])
	if !strings.HasPrefix(isin, isinPrefix) {
		return nil, domain.NewError(domain.KindNotDataRow)
	}

	desc := strings.TrimSpace(cells[layout.Desc])
	if strings.Contains(strings.ToLower(desc), unsupportedMarker) {
		return nil, domain.NewError(domain.KindUnsupportedBond)
	}

	b := domain.NewUKGilt(source, settlementDate)
	b.ISIN = isin
	b.Desc = desc

	res := &Result{}

	if settlementDate.IsZero() {
		res.report(domain.KindInvalidSettlementDate, fieldSettlement)
	}

	if desc == "" {
		res.report(domain.KindInvalidDesc, fieldDesc)
	}

	if layout.Ticker >= 0 {
		b.Ticker = strings.TrimSpace(cells[layout.Ticker])
		if b.Ticker == "" {
			res.report(domain.KindInvalidTicker, fieldTicker)
		}
	}

	if coupon, err := CouponPercent(desc); err == nil {
		b.Coupon = coupon
	} else {
		res.report(domain.KindInvalidCoupon, fieldDesc)
	}

	if price, ok := parsePrice(cells[layout.CleanPrice]); ok {
		b.CleanPrice = price
	} else {
		res.report(domain.KindInvalidCleanPrice, fieldCleanPrice)
	}

	if price, ok := parsePrice(cells[layout.DirtyPrice]); ok {
		b.DirtyPrice = price
	} else {
		res.report(domain.KindInvalidDirtyPrice, fieldDirtyPrice)
	}

	if ts, err := time.Parse(MaturityDateFormat, strings.TrimSpace(cells[layout.MaturityDate])); err == nil {
		b.MaturityDate = ts
	} else {
		res.report(domain.KindInvalidMaturityDate, fieldMaturityDate)
	}

	res.Bond = b

	return res, nil
}

// parsePrice parses a decimal price cell; negative and non-numeric values
// are rejected
func parsePrice(cell string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}
