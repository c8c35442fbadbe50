// Package yield prices fixed-coupon bonds and solves the price/yield
// relationship for UK gilts.
//
// Two pricing functions operate over the same coupon schedule:
//
//  1. DirtyPrice: the unweighted present value of all remaining cash flows
//     discounted to settlement.
//  2. CleanPrice: the quoted-price convention, with the accrued-interest
//     adjustment folded into the nearest cash-flow term.
//
// The two use different exponent conventions for the partial first period,
// so neither is derivable from the other by subtracting accrued interest.
//
// Each pricing function has a closed-form analytic derivative with respect
// to yield, used by the Newton-Raphson solvers:
//
//	y[k+1] = y[k] - (f(y[k]) - targetPrice) / f'(y[k])
//
// Convergence stops when |f(y) - targetPrice| falls below the configured
// tolerance. A derivative magnitude below 1e-12 reports a degenerate
// slope; exhausting the iteration budget reports non-convergence. The two
// failure modes are distinct error kinds and an unconverged value is never
// returned silently.
//
// SolveCleanYield and SolveDirtyYield expect an initial guess from
// EstimateYield, a closed-form approximation good enough to keep
// Newton-Raphson inside the monotonic region of both price functions.
package yield
