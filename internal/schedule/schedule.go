// Package schedule derives the coupon schedule of a gilt from its
// settlement and maturity dates under the semiannual convention.
package schedule

import (
	"math"
	"time"

	"giltcli/pkg/contracts/domain"
)

// CouponsPerYear is the semiannual gilt convention
const CouponsPerYear = 2

// daysPerYear is the approximation used when converting the maturity
// remainder into coupon periods. It deliberately ignores the difference
// between 30/360 and actual/actual day counts; downstream fixtures are
// computed against this approximation.
// TODO account for day-count conventions (30/360 vs actual/actual) in the
// coupon period count.
const daysPerYear = 365.0

// MaturitySplit splits the settlement-to-maturity span into whole years
// plus remaining days. The year count is decremented when the settlement
// month/day within the maturity year falls after the maturity date itself,
// so the final partial year is never counted as a whole one.
func MaturitySplit(settlementDate, maturityDate time.Time) (int, int, error) {
	if maturityDate.Before(settlementDate) {
		return 0, 0, domain.NewError(domain.KindMaturityBeforeSettlement)
	}

	years := maturityDate.Year() - settlementDate.Year()

	end := midnight(maturityDate.Year(), maturityDate.Month(), maturityDate.Day(), maturityDate.Location())
	start := midnight(maturityDate.Year(), settlementDate.Month(), settlementDate.Day(), maturityDate.Location())

	if start.After(end) {
		years--
		start = start.AddDate(-1, 0, 0)
	}

	days := daysBetween(start, end)

	return years, days, nil
}

// Derive populates the coupon dates and day counts of a parsed bond,
// advancing it to StateScheduleDerived. A bond at that state or later is
// returned unchanged; derivation is idempotent.
func Derive(b domain.Bond) (domain.Bond, error) {
	if b.State >= domain.StateScheduleDerived {
		return b, nil
	}

	years, days, err := MaturitySplit(b.SettlementDate, b.MaturityDate)
	if err != nil {
		return b, err
	}

	b.MaturityYears = years
	b.MaturityDays = days

	// Coupons fall on the semiannual anniversaries of the maturity
	// month/day. Start from the anniversary in the settlement year and
	// adjust to the first one strictly after settlement.
	next := midnight(b.SettlementDate.Year(), b.MaturityDate.Month(), b.MaturityDate.Day(), b.MaturityDate.Location())

	if b.SettlementDate.After(next) {
		next = next.AddDate(0, 12/CouponsPerYear, 0)
	} else if prev := next.AddDate(0, -12/CouponsPerYear, 0); b.SettlementDate.Before(prev) {
		next = prev
	}

	b.NextCouponDate = next
	b.PrevCouponDate = next.AddDate(0, -12/CouponsPerYear, 0)

	b.RemainingDays = daysBetween(b.SettlementDate, b.NextCouponDate)
	b.AccruedDays = daysBetween(b.PrevCouponDate, b.SettlementDate)
	b.CouponPeriodDays = daysBetween(b.PrevCouponDate, b.NextCouponDate)

	b.CouponPeriods = years*CouponsPerYear + int(math.Ceil(float64(days)/daysPerYear*CouponsPerYear))

	b.State = domain.StateScheduleDerived

	return b, nil
}

func midnight(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
