// Command calc-ytm completes a single gilt from the command line: given
// the coupon, dates and either a price or a yield, it derives the coupon
// schedule and solves for whichever side of the price/yield relationship
// is missing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"giltcli/internal/pipeline"
	"giltcli/internal/yield"
	"giltcli/pkg/contracts/domain"
)

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	coupon := flag.Float64("coupon", 0.0, "coupon rate (%) of the bond")
	faceValue := flag.Float64("facevalue", 100, "face value of the bond")
	cleanPrice := flag.Float64("cleanprice", 0.0, "clean price of the bond")
	dirtyPrice := flag.Float64("dirtyprice", 0.0, "dirty price of the bond")
	ytm := flag.Float64("ytm", 0.0, "yield to maturity (%) of the bond")
	settlementDateStr := flag.String("settlementdate", "", "settlement date (YYYY-MM-DD), defaults to today")
	maturityDateStr := flag.String("maturitydate", "", "maturity date (YYYY-MM-DD)")
	tolerance := flag.Float64("tolerance", yield.DefaultConfig().Tolerance, "solver convergence tolerance")
	maxIterations := flag.Int("maxiterations", yield.DefaultConfig().MaxIterations, "solver iteration budget")

	flag.Parse()

	if *coupon <= 0 {
		fatal("error: -coupon is required and must be positive")
	}

	if *cleanPrice == 0 && *dirtyPrice == 0 && *ytm == 0 {
		fatal("error: one of -cleanprice, -dirtyprice or -ytm is required")
	}

	if *maturityDateStr == "" {
		fatal("error: -maturitydate is required")
	}

	settlementDate, err := parseDate(*settlementDateStr)
	if err != nil {
		fatal("error: invalid settlement date: %v", err)
	}

	maturityDate, err := parseDate(*maturityDateStr)
	if err != nil {
		fatal("error: invalid maturity date: %v", err)
	}

	bond := domain.NewUKGilt("cli", settlementDate)
	bond.FacePrice = *faceValue
	bond.Coupon = *coupon
	bond.MaturityDate = maturityDate
	bond.CleanPrice = *cleanPrice
	bond.DirtyPrice = *dirtyPrice
	bond.YieldToMaturity = *ytm

	cfg := yield.Config{Tolerance: *tolerance, MaxIterations: *maxIterations}

	bond, err = pipeline.Complete(bond, cfg)
	if err != nil {
		fatal("error: failed to complete bond: %v", err)
	}

	fmt.Printf("Bond Details:\n")
	fmt.Printf("\tType: %s\n", bond.Type)
	fmt.Printf("\tFace Value: %.3f\n", bond.FacePrice)
	fmt.Printf("\tCoupon Rate: %.3f%%\n", bond.Coupon)
	fmt.Printf("\tSettlement Date: %s\n", bond.SettlementDate.Format("2006-01-02"))
	fmt.Printf("\tMaturity Date: %s\n", bond.MaturityDate.Format("2006-01-02"))
	fmt.Printf("\tPrevious Coupon Date: %s\n", bond.PrevCouponDate.Format("2006-01-02"))
	fmt.Printf("\tNext Coupon Date: %s\n", bond.NextCouponDate.Format("2006-01-02"))
	fmt.Printf("\tRemaining Days: %d\n", bond.RemainingDays)
	fmt.Printf("\tAccrued Days: %d\n", bond.AccruedDays)
	fmt.Printf("\tAccrued Amount: %.3f\n", bond.AccruedAmount())
	fmt.Printf("\tCoupon Period Days: %d\n", bond.CouponPeriodDays)
	fmt.Printf("\tCoupon Periods: %d\n", bond.CouponPeriods)
	fmt.Printf("\tMaturity Years: %d\n", bond.MaturityYears)
	fmt.Printf("\tMaturity Days: %d\n", bond.MaturityDays)
	fmt.Printf("\tClean Price: %.3f\n", bond.CleanPrice)
	fmt.Printf("\tDirty Price: %.3f\n", bond.DirtyPrice)
	fmt.Printf("\tYield to Maturity: %.6f%%\n", bond.YieldToMaturity)
}
