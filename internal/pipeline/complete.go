package pipeline

import (
	"giltcli/internal/schedule"
	"giltcli/internal/yield"
	"giltcli/pkg/contracts/domain"
)

// Complete runs a parsed bond through schedule derivation and the
// price/yield solver, returning the bond at StateComplete or the error
// that stopped it.
//
// Complete is idempotent: a bond whose schedule is already derived skips
// derivation (the state tag is the re-entrancy guard, not field
// presence), and a bond already at StateComplete is revalidated but not
// recomputed.
func Complete(b domain.Bond, cfg yield.Config) (domain.Bond, error) {
	if err := checkPreconditions(b); err != nil {
		return b, err
	}

	b, err := schedule.Derive(b)
	if err != nil {
		return b, err
	}

	b, err = solve(b, cfg)
	if err != nil {
		return b, err
	}

	b.State = domain.StateComplete

	return b, nil
}

func checkPreconditions(b domain.Bond) error {
	if b == (domain.Bond{}) {
		return domain.NewError(domain.KindNilBond)
	}

	if b.SettlementDate.IsZero() {
		return domain.FieldError(domain.KindInvalidSettlementDate, "settlement_date")
	}

	if b.MaturityDate.IsZero() {
		return domain.FieldError(domain.KindInvalidMaturityDate, "maturity_date")
	}

	if b.Coupon <= 0 {
		return domain.FieldError(domain.KindInvalidCoupon, "coupon")
	}

	if b.FacePrice <= 0 {
		return domain.FieldError(domain.KindInvalidFacePrice, "face_price")
	}

	if b.CleanPrice < 0 {
		return domain.FieldError(domain.KindInvalidCleanPrice, "clean_price")
	}

	if b.DirtyPrice < 0 {
		return domain.FieldError(domain.KindInvalidDirtyPrice, "dirty_price")
	}

	if b.YieldToMaturity < 0 {
		return domain.FieldError(domain.KindInvalidYield, "yield_to_maturity")
	}

	// One of price or yield has to be known to solve for the others
	if !b.HasPriceOrYield() {
		return domain.NewError(domain.KindMissingPriceAndYield)
	}

	return nil
}

// solve fills in whichever of clean price, dirty price and yield are
// missing, advancing the bond to StateSolved. Requires a derived schedule.
func solve(b domain.Bond, cfg yield.Config) (domain.Bond, error) {
	if b.State >= domain.StateSolved {
		return b, nil
	}
	if b.State < domain.StateScheduleDerived {
		return b, domain.NewError(domain.KindStateConflict)
	}

	terms := yield.Terms{
		Coupon:        b.Coupon,
		FaceValue:     b.FacePrice,
		Frequency:     schedule.CouponsPerYear,
		Periods:       b.CouponPeriods,
		RemainingDays: b.RemainingDays,
		PeriodDays:    b.CouponPeriodDays,
	}

	if b.YieldToMaturity == 0 {
		knownPrice := b.CleanPrice
		if knownPrice == 0 {
			knownPrice = b.DirtyPrice
		}

		guess := yield.EstimateYield(
			b.Coupon,
			b.FacePrice,
			knownPrice,
			float64(b.MaturityYears)+float64(b.MaturityDays)/365.0,
		)

		var (
			ytm float64
			err error
		)

		if b.DirtyPrice > 0 {
			ytm, err = yield.SolveDirtyYield(terms, b.DirtyPrice, guess, cfg)
		} else {
			ytm, err = yield.SolveCleanYield(terms, b.CleanPrice, guess, cfg)
		}

		if err != nil {
			return b, err
		}

		b.YieldToMaturity = ytm
	}

	// Yield known but neither price: forward-price the dirty side, the
	// clean side follows from the accrued relation below.
	if b.CleanPrice == 0 && b.DirtyPrice == 0 {
		b.DirtyPrice = yield.DirtyPrice(terms, b.YieldToMaturity)
	}

	accrued := b.AccruedAmount()

	if b.CleanPrice == 0 {
		b.CleanPrice = b.DirtyPrice - accrued
	} else if b.DirtyPrice == 0 {
		b.DirtyPrice = b.CleanPrice + accrued
	}

	b.State = domain.StateSolved

	return b, nil
}
