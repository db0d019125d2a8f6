package types

import (
	"fmt"
	"math"

	"github.com/creasty/defaults"
)

// BondSpec describes a fixed-coupon bond paying PeriodsPerYear equal coupons a year.
type BondSpec struct {
	FaceValue        float64
	AnnualCouponRate float64
	YearsToMaturity  float64
	PeriodsPerYear   int
}

// Periods returns the number of coupon periods remaining, rounded to the nearest whole period.
func (b BondSpec) Periods() int {
	return int(math.Round(float64(b.PeriodsPerYear) * b.YearsToMaturity))
}

// CouponPayment returns the coupon paid each period.
func (b BondSpec) CouponPayment() float64 {
	return b.FaceValue * b.AnnualCouponRate / float64(b.PeriodsPerYear)
}

// SolverConfig tunes the bisection solver. Each call gets its own copy.
type SolverConfig struct {
	Tolerance     float64 `default:"1e-9" yaml:"tolerance" json:"tolerance" validate:"gt=0"`
	MaxIterations int     `default:"200" yaml:"max_iterations" json:"max_iterations" validate:"gte=1"`
}

func DefaultSolverConfig() SolverConfig {
	var cfg SolverConfig
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

type Method string

var (
	MethodClosedForm Method = "closed-form"
	MethodBisection  Method = "bisection"
)

// YTMResult holds a solved yield. Converged is false only when bisection ran
// out of iterations and the midpoint of the last bracket was returned.
type YTMResult struct {
	PeriodicRate        float64 `json:"periodic_rate"`
	AnnualEffectiveRate float64 `json:"annual_effective_rate"`
	NominalAPR          float64 `json:"nominal_apr"`
	Converged           bool    `json:"converged"`
	Iterations          int     `json:"iterations"`
	Method              Method  `json:"method"`
}

func newResult(periodic float64, n int, method Method, converged bool, iterations int) YTMResult {
	return YTMResult{
		PeriodicRate:        periodic,
		AnnualEffectiveRate: math.Pow(1+periodic, float64(n)) - 1,
		NominalAPR:          periodic * float64(n),
		Converged:           converged,
		Iterations:          iterations,
		Method:              method,
	}
}

var (
	ErrInvalidPeriods    = fmt.Errorf("number of coupon periods must be at least 1")
	ErrInvalidPrice      = fmt.Errorf("price must be positive for zero-coupon bonds")
	ErrUnbracketableRoot = fmt.Errorf("unable to bracket yield to maturity, check price, coupon, face value and years")
)
