package calc

import (
	"fmt"
	"io"
	"math"

	"benritz/ytm/internal/types"
)

// PriceCheck is the bond re-priced at the solved rate.
type PriceCheck struct {
	Price    float64 `json:"price"`
	Residual float64 `json:"residual"`
}

type Response struct {
	Request Request         `json:"request"`
	Result  types.YTMResult `json:"result"`
	Check   PriceCheck      `json:"check"`
	Percent PercentFigures  `json:"percent"`
}

// PercentFigures are the result rates as percentages.
type PercentFigures struct {
	Periodic        float64 `json:"periodic"`
	AnnualEffective float64 `json:"annual_effective"`
	NominalAPR      float64 `json:"nominal_apr"`
}

// Run validates req and solves for its yield to maturity.
func Run(req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	spec := req.Spec()

	res, err := types.SolveYieldToMaturity(spec, req.Price, req.SolverConfig())
	if err != nil {
		return nil, err
	}

	price := spec.PriceAt(res.PeriodicRate)

	return &Response{
		Request: req,
		Result:  res,
		Check: PriceCheck{
			Price:    price,
			Residual: price - req.Price,
		},
		Percent: PercentFigures{
			Periodic:        res.PeriodicRate * 100,
			AnnualEffective: res.AnnualEffectiveRate * 100,
			NominalAPR:      res.NominalAPR * 100,
		},
	}, nil
}

// WriteText prints the inputs and yields in the calculator's report format.
func (r *Response) WriteText(w io.Writer) error {
	req := r.Request

	lines := []string{
		fmt.Sprintf("Inputs: face=%.2f, coupon=%.6f%%, years=%.6f, price=%.2f, periods/year=%d",
			req.FaceValue, req.CouponRate, req.Years, req.Price, req.PeriodsPerYear),
		fmt.Sprintf("Periodic YTM (per period): %.9f%%", r.Percent.Periodic),
		fmt.Sprintf("Annualized effective YTM: %.9f%%", r.Percent.AnnualEffective),
		fmt.Sprintf("Nominal APR (periodic * m): %.9f%%", r.Percent.NominalAPR),
	}

	if !r.Result.Converged {
		lines = append(lines, fmt.Sprintf(
			"Warning: no convergence after %d iterations, price at returned rate differs by %.3g",
			r.Result.Iterations, math.Abs(r.Check.Residual)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
