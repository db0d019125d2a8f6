package types

import "math"

// PriceAtRate calculates the present value of a fixed-coupon bond at a periodic rate.
//
// Parameters:
//
//	r:      Periodic discount rate (0.04 is 4% per period), must be greater than -1.
//	F:      Face value of the bond.
//	C:      Annual coupon rate (0.08 is 8%).
//	years:  Years to maturity.
//	n:      The number of coupon payments per year.
//
// Returns:
//
//	Present value of the coupons and the face value, or 0 when no coupon periods remain.
func PriceAtRate(r, F, C, years float64, n int) float64 {
	return BondSpec{
		FaceValue:        F,
		AnnualCouponRate: C,
		YearsToMaturity:  years,
		PeriodsPerYear:   n,
	}.PriceAt(r)
}

// PriceAt discounts the bond's cash flows at the periodic rate r.
func (b BondSpec) PriceAt(r float64) float64 {
	m := b.Periods()
	if m <= 0 {
		return 0.0
	}

	CP := b.CouponPayment()

	price := 0.0
	for j := 1; j <= m; j++ {
		price += CP / math.Pow(1+r, float64(j))
	}

	price += b.FaceValue / math.Pow(1+r, float64(m))

	return price
}
