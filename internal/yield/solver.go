package yield

import (
	"math"

	"giltcli/pkg/contracts/domain"
)

// derivativeFloor is the smallest derivative magnitude Newton-Raphson will
// divide by before reporting a degenerate slope
const derivativeFloor = 1e-12

// Config controls Newton-Raphson convergence. Both values are policy of
// the caller, not of this package.
type Config struct {
	Tolerance     float64 `validate:"gt=0"`
	MaxIterations int     `validate:"gt=0"`
}

// DefaultConfig returns the reference solver settings
func DefaultConfig() Config {
	return Config{
		Tolerance:     0.001,
		MaxIterations: 1000,
	}
}

// SolveCleanYield finds the yield to maturity whose clean price matches
// price, starting from guess (a percentage). Iteration runs directly in
// percentage space against the clean-price derivative.
func SolveCleanYield(t Terms, price, guess float64, cfg Config) (float64, error) {
	y := guess

	for range cfg.MaxIterations {
		dp := CleanPrice(t, y) - price
		if math.Abs(dp) < cfg.Tolerance {
			return y, nil
		}

		d := cleanPriceDerivative(t, y)
		if math.Abs(d) < derivativeFloor {
			return 0, domain.NewError(domain.KindDerivativeVanished)
		}

		y = y - dp/d
	}

	return 0, domain.NewError(domain.KindNoConvergence)
}

// SolveDirtyYield finds the yield to maturity whose dirty price matches
// price, starting from guess (a percentage). Iteration runs on the decimal
// rate internally to match the dirty-price derivative convention.
func SolveDirtyYield(t Terms, price, guess float64, cfg Config) (float64, error) {
	yd := guess / 100

	for range cfg.MaxIterations {
		dp := DirtyPrice(t, yd*100) - price
		if math.Abs(dp) < cfg.Tolerance {
			return yd * 100, nil
		}

		d := dirtyPriceDerivative(t, yd)
		if math.Abs(d) < derivativeFloor {
			return 0, domain.NewError(domain.KindDerivativeVanished)
		}

		yd = yd - dp/d
	}

	return 0, domain.NewError(domain.KindNoConvergence)
}
