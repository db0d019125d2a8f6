package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPriceAtRate(t *testing.T) {
	tests := []struct {
		name     string
		r        float64
		F, C     float64
		years    float64
		n        int
		expected float64
	}{
		{"zero rate is undiscounted sum", 0, 1000, 0.08, 10, 2, 1000 + 20*40},
		{"coupon equals rate prices at par", 0.04, 1000, 0.08, 10, 2, 1000},
		{"single period", 0.1, 100, 0.1, 1, 1, 100},
		{"zero coupon", 0.05, 1000, 0, 5, 1, 1000 / math.Pow(1.05, 5)},
		{"annual coupon", 0.05, 100, 0.03, 3, 1, 3/1.05 + 3/math.Pow(1.05, 2) + 103/math.Pow(1.05, 3)},
		{"periods round to nearest", 0.04, 1000, 0.08, 10.2, 2, 1000},
		{"no periods", 0.04, 1000, 0.08, 0.01, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceAtRate(tt.r, tt.F, tt.C, tt.years, tt.n)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-9) {
				t.Errorf("PriceAtRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPriceAtIsStrictlyDecreasing(t *testing.T) {
	specs := []BondSpec{
		{FaceValue: 1000, AnnualCouponRate: 0.08, YearsToMaturity: 10, PeriodsPerYear: 2},
		{FaceValue: 100, AnnualCouponRate: 0.035, YearsToMaturity: 2, PeriodsPerYear: 2},
		{FaceValue: 1000, AnnualCouponRate: 0, YearsToMaturity: 5, PeriodsPerYear: 1},
		{FaceValue: 500, AnnualCouponRate: 0.12, YearsToMaturity: 3, PeriodsPerYear: 4},
	}

	rates := []float64{-0.9, -0.5, -0.1, 0, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

	for _, spec := range specs {
		prev := spec.PriceAt(rates[0])
		for _, r := range rates[1:] {
			p := spec.PriceAt(r)
			assert.Less(t, p, prev, "price at %v should be below price at the previous rate for %+v", r, spec)
			prev = p
		}
	}
}

func TestBondSpecPeriods(t *testing.T) {
	assert.Equal(t, 20, BondSpec{YearsToMaturity: 10, PeriodsPerYear: 2}.Periods())
	assert.Equal(t, 1, BondSpec{YearsToMaturity: 0.5, PeriodsPerYear: 2}.Periods())
	assert.Equal(t, 3, BondSpec{YearsToMaturity: 0.7, PeriodsPerYear: 4}.Periods())
	assert.Equal(t, 0, BondSpec{YearsToMaturity: 0.01, PeriodsPerYear: 1}.Periods())
	assert.Equal(t, 40.0, BondSpec{FaceValue: 1000, AnnualCouponRate: 0.08, PeriodsPerYear: 2}.CouponPayment())
}
