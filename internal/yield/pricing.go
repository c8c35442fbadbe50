package yield

import (
	"math"
)

// Terms carries the schedule-derived inputs shared by the pricing
// functions. Prices are per 100 nominal scaled by FaceValue; Coupon is the
// annual rate as a percentage.
type Terms struct {
	Coupon        float64 // annual coupon rate (%)
	FaceValue     float64 // face value, conventionally 100
	Frequency     int     // coupon payments per year
	Periods       int     // coupon payments remaining to maturity
	RemainingDays int     // days from settlement to the next coupon
	PeriodDays    int     // days between the previous and next coupon
}

// partialPeriod is the fraction of the current coupon period still to run
func (t Terms) partialPeriod() float64 {
	return float64(t.RemainingDays) / float64(t.PeriodDays)
}

// CleanPrice prices the bond off the quoted-price convention: each cash
// flow is discounted by whole periods, with the final payment discounted
// over the remaining fractional period when maturity does not coincide
// with a coupon date.
//
//	y: annual yield to maturity as a percentage.
//
// Returns the clean price per FaceValue nominal.
func CleanPrice(t Terms, y float64) float64 {
	cp := t.Coupon / 100 / float64(t.Frequency) * t.FaceValue
	ypp := y / 100 / float64(t.Frequency)

	price := 0.0

	// At maturity the holder receives the face value plus, when maturity
	// falls inside a coupon period, the pro-rated final coupon.
	mp := t.FaceValue
	m := t.Periods

	r := t.partialPeriod()
	if r > 0 {
		mp += cp * r
		m--
	}

	price += mp / math.Pow(1+ypp, float64(m)+r)

	for j := 1; j <= m; j++ {
		price += cp / math.Pow(1+ypp, float64(j))
	}

	return price
}

// cleanPriceDerivative is d(CleanPrice)/dy with y as a percentage
func cleanPriceDerivative(t Terms, y float64) float64 {
	cp := t.Coupon / 100 / float64(t.Frequency) * t.FaceValue
	ypp := y / 100 / float64(t.Frequency)
	dYppDy := 1 / (100 * float64(t.Frequency))
	r := t.partialPeriod()

	derivative := 0.0

	mp := t.FaceValue
	m := t.Periods
	if r > 0 {
		mp += cp * r
		m--
	}

	num := -mp * (float64(m) + r)
	den := math.Pow(1+ypp, float64(m)+r+1)
	derivative += num / den * dYppDy

	for j := 1; j <= m; j++ {
		derivative += -cp * float64(j) / math.Pow(1+ypp, float64(j)+1) * dYppDy
	}

	return derivative
}

// DirtyPrice prices the bond as the unweighted present value of all
// remaining cash flows discounted to the settlement date. Note the
// exponent convention for the partial first period differs from
// CleanPrice; the two are distinct functions, not clean plus accrued.
//
//	y: annual yield to maturity as a percentage.
//
// Returns the dirty price per FaceValue nominal.
func DirtyPrice(t Terms, y float64) float64 {
	yd := y / 100
	n := float64(t.Frequency)

	sum := 0.0
	for j := 1; j <= t.Periods; j++ {
		sum += (t.Coupon / n) / math.Pow(1+(yd/n), float64(j-1))
	}

	r := t.partialPeriod()

	return (1 / math.Pow(1+(yd/n), r)) * (sum + t.FaceValue/math.Pow(1+(yd/n), float64(t.Periods-1)))
}

// dirtyPriceDerivative is d(DirtyPrice)/dy with y as a decimal rate
// (percentage divided by 100), matching the dirty solver's internal
// iteration variable.
func dirtyPriceDerivative(t Terms, yd float64) float64 {
	n := float64(t.Frequency)
	m := t.Periods

	derivative := 0.0
	for j := 1; j <= m; j++ {
		derivative += -(float64(j-1) * (t.Coupon / n) / math.Pow(1+(yd/n), float64(j)) / n)
	}

	sum := 0.0
	for j := 1; j <= m; j++ {
		sum += (t.Coupon / n) / math.Pow(1+(yd/n), float64(j-1))
	}

	r := t.partialPeriod()

	derivative += -r / (1 + yd/n) * (t.FaceValue/math.Pow(1+yd/n, float64(m-1)) + sum)
	derivative += (1 / math.Pow(1+yd/n, r)) * (-(float64(m-1) / n) * t.FaceValue / math.Pow(1+yd/n, float64(m)) / n)

	return derivative
}

// EstimateYield returns a closed-form first guess at the yield to
// maturity: coupon income plus the amortized capital gain or loss over the
// remaining term, averaged against the mean of face value and price.
//
//	coupon: annual coupon rate (%).
//	face:   face value.
//	price:  market price.
//	years:  years to maturity (fractional).
//
// Returns the estimate as a percentage.
func EstimateYield(coupon, face, price, years float64) float64 {
	cp := coupon / 100 * face
	y := (cp + (face-price)/years) / ((face + price) / 2)
	return y * 100
}
