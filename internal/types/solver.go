package types

import "math"

const (
	bracketLow        = -0.999999
	bracketHigh       = 10.0
	maxBracketDoubles = 100
	zeroCouponEpsilon = 1e-12
)

// bracket is a rate interval with the pricing error at each end.
type bracket struct {
	low, high   float64
	fLow, fHigh float64
}

func (b bracket) hasRoot() bool {
	return !(b.fLow*b.fHigh > 0)
}

func (b bracket) mid() float64 {
	return 0.5 * (b.low + b.high)
}

// expandBracket doubles the upper bound once and returns the new bracket.
func expandBracket(b bracket, f func(float64) float64) bracket {
	high := b.high * 2
	return bracket{low: b.low, high: high, fLow: b.fLow, fHigh: f(high)}
}

// findBracket widens the default interval until the pricing error changes sign.
func findBracket(f func(float64) float64) (bracket, error) {
	b := bracket{low: bracketLow, high: bracketHigh, fLow: f(bracketLow), fHigh: f(bracketHigh)}

	for tries := 0; !b.hasRoot() && tries < maxBracketDoubles; tries++ {
		b = expandBracket(b, f)
	}

	if !b.hasRoot() {
		return bracket{}, ErrUnbracketableRoot
	}

	return b, nil
}

// bisect halves b until the pricing error at the midpoint is within t, or i steps have run.
// It returns the accepted rate, whether it converged, and the number of steps taken.
func bisect(b bracket, f func(float64) float64, t float64, i int) (float64, bool, int) {
	for iter := 0; iter < i; iter++ {
		mid := b.mid()
		fMid := f(mid)

		if math.Abs(fMid) < t {
			return mid, true, iter + 1
		}

		if b.fLow*fMid < 0 {
			b.high, b.fHigh = mid, fMid
		} else {
			b.low, b.fLow = mid, fMid
		}
	}

	return b.mid(), false, i
}

// SolveYieldToMaturity finds the periodic rate at which the bond's present value equals price.
//
// Zero-coupon bonds are solved in closed form. Otherwise the rate is found by
// bisection over [-0.999999, 10], doubling the upper bound up to 100 times until
// the interval brackets a root. When bisection exhausts cfg.MaxIterations the
// midpoint of the final bracket is returned with Converged set to false.
func SolveYieldToMaturity(spec BondSpec, price float64, cfg SolverConfig) (YTMResult, error) {
	m := spec.Periods()
	if m < 1 {
		return YTMResult{}, ErrInvalidPeriods
	}

	if math.Abs(spec.CouponPayment()) < zeroCouponEpsilon {
		if price <= 0 {
			return YTMResult{}, ErrInvalidPrice
		}

		y := math.Pow(spec.FaceValue/price, 1.0/float64(m)) - 1.0
		return newResult(y, spec.PeriodsPerYear, MethodClosedForm, true, 0), nil
	}

	f := func(r float64) float64 {
		return spec.PriceAt(r) - price
	}

	b, err := findBracket(f)
	if err != nil {
		return YTMResult{}, err
	}

	y, converged, iterations := bisect(b, f, cfg.Tolerance, cfg.MaxIterations)

	return newResult(y, spec.PeriodsPerYear, MethodBisection, converged, iterations), nil
}

// YieldToMaturity calculates the yield to maturity of a fixed-coupon bond.
//
// Parameters:
//
//	F:      Face value of the bond.
//	C:      Annual coupon rate (0.08 is 8%).
//	years:  Years to maturity.
//	P:      Market price.
//	n:      The number of coupon payments per year.
//	t:      Tolerance on the pricing error for convergence.
//	i:      Maximum number of bisection iterations.
//
// Returns:
//
//	Periodic, annual effective and nominal yields as rates.
func YieldToMaturity(F, C, years, P float64, n int, t float64, i int) (YTMResult, error) {
	spec := BondSpec{
		FaceValue:        F,
		AnnualCouponRate: C,
		YearsToMaturity:  years,
		PeriodsPerYear:   n,
	}

	return SolveYieldToMaturity(spec, P, SolverConfig{Tolerance: t, MaxIterations: i})
}
