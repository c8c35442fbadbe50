package domain

import (
	"time"
)

// BondType represents the instrument family a record belongs to
type BondType string

const (
	// BondTypeUKGilt is a conventional fixed-coupon UK government bond
	BondTypeUKGilt BondType = "UK Gilt"
)

// BondState tags how far a bond has progressed through the completion
// pipeline. States only move forward; a bond never regresses to an
// earlier state once a transformation has succeeded.
type BondState int

const (
	// StateParsed means the record has been built from raw cells but no
	// analytics have been derived yet
	StateParsed BondState = iota
	// StateScheduleDerived means coupon dates and day counts are populated
	StateScheduleDerived
	// StateSolved means prices and yield are fully populated
	StateSolved
	// StateComplete means the bond passed final validation and is ready
	// for persistence
	StateComplete
)

// String returns the string representation of the state
func (s BondState) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateScheduleDerived:
		return "schedule_derived"
	case StateSolved:
		return "solved"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Bond is a single fixed-income instrument observed on one settlement date.
// Price and yield fields are quoted per 100 nominal; Coupon and
// YieldToMaturity are annual percentages.
type Bond struct {
	State BondState `json:"-" parquet:"-"`

	Type   BondType `json:"type" parquet:"type"`
	Source string   `json:"source" parquet:"source"`
	ISIN   string   `json:"isin" parquet:"isin"`
	Ticker string   `json:"ticker,omitempty" parquet:"ticker"`
	Desc   string   `json:"desc" parquet:"desc"`

	FacePrice float64 `json:"face_price" parquet:"face_price"`
	Coupon    float64 `json:"coupon" parquet:"coupon"`

	SettlementDate time.Time `json:"settlement_date" parquet:"settlement_date"`
	MaturityDate   time.Time `json:"maturity_date" parquet:"maturity_date"`
	PrevCouponDate time.Time `json:"prev_coupon_date" parquet:"prev_coupon_date"`
	NextCouponDate time.Time `json:"next_coupon_date" parquet:"next_coupon_date"`

	RemainingDays    int `json:"remaining_days" parquet:"remaining_days"`
	AccruedDays      int `json:"accrued_days" parquet:"accrued_days"`
	CouponPeriodDays int `json:"coupon_period_days" parquet:"coupon_period_days"`
	CouponPeriods    int `json:"coupon_periods" parquet:"coupon_periods"`
	MaturityYears    int `json:"maturity_years" parquet:"maturity_years"`
	MaturityDays     int `json:"maturity_days" parquet:"maturity_days"`

	CleanPrice      float64 `json:"clean_price" parquet:"clean_price"`
	DirtyPrice      float64 `json:"dirty_price" parquet:"dirty_price"`
	YieldToMaturity float64 `json:"yield_to_maturity" parquet:"yield_to_maturity"`
}

// NewUKGilt creates a provisional gilt record for the given source and
// settlement date. Gilts are quoted per 100 nominal.
func NewUKGilt(source string, settlementDate time.Time) Bond {
	return Bond{
		State:          StateParsed,
		Type:           BondTypeUKGilt,
		Source:         source,
		FacePrice:      100.0,
		SettlementDate: settlementDate,
	}
}

// HasSchedule reports whether both coupon dates are populated
func (b Bond) HasSchedule() bool {
	return !b.PrevCouponDate.IsZero() && !b.NextCouponDate.IsZero()
}

// HasPriceOrYield reports whether at least one of clean price, dirty price
// or yield is available as a solver input
func (b Bond) HasPriceOrYield() bool {
	return b.CleanPrice > 0 || b.DirtyPrice > 0 || b.YieldToMaturity > 0
}

// AccruedAmount returns the accrued interest since the previous coupon,
// per 100 nominal scaled by the face value. Zero before the schedule has
// been derived.
func (b Bond) AccruedAmount() float64 {
	if b.CouponPeriodDays == 0 {
		return 0
	}
	return float64(b.AccruedDays) / float64(b.CouponPeriodDays) * b.Coupon / 2 / 100 * b.FacePrice
}

// Failure pairs an original source row with the error that stopped it from
// completing. Kept for observability; persistence of failures is optional.
type Failure struct {
	Row   int      `json:"row"`
	Cells []string `json:"cells"`
	Err   error    `json:"-"`
}

// CollectedBatch holds the outcome of collecting one settlement date from
// one source: the bonds that completed and the rows that failed, in the
// order they were accepted. A batch is append-only while a collection run
// is in flight and immutable afterwards.
type CollectedBatch struct {
	Source         string    `json:"source"`
	SettlementDate time.Time `json:"settlement_date"`
	Bonds          []Bond    `json:"bonds"`
	Failures       []Failure `json:"failures"`
}

// NewCollectedBatch creates an empty batch for the given source and
// settlement date
func NewCollectedBatch(source string, settlementDate time.Time) *CollectedBatch {
	return &CollectedBatch{
		Source:         source,
		SettlementDate: settlementDate,
		Bonds:          []Bond{},
		Failures:       []Failure{},
	}
}

// AddBond appends a completed bond to the batch
func (c *CollectedBatch) AddBond(b Bond) {
	c.Bonds = append(c.Bonds, b)
}

// AddFailure records a row that could not be completed
func (c *CollectedBatch) AddFailure(row int, cells []string, err error) {
	c.Failures = append(c.Failures, Failure{Row: row, Cells: cells, Err: err})
}
