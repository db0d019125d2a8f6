package calc

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"benritz/ytm/internal/types"

	"github.com/go-playground/validator/v10"
)

// Request carries the inputs of one yield calculation. CouponRate is a percentage (8 is 8%).
type Request struct {
	FaceValue      float64 `json:"face_value" validate:"finite,gt=0"`
	CouponRate     float64 `json:"coupon_rate" validate:"finite"`
	Years          float64 `json:"years" validate:"finite,gt=0"`
	Price          float64 `json:"price" validate:"finite"`
	PeriodsPerYear int     `json:"periods_per_year" validate:"gte=1"`
	Tolerance      float64 `json:"tolerance,omitempty" validate:"finite,gt=0"`
	MaxIterations  int     `json:"max_iterations,omitempty" validate:"gte=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}); err != nil {
		panic(err)
	}
}

var ErrInvalidRequest = fmt.Errorf("invalid request")

// NewRequest returns a Request holding the configured solver and schedule defaults.
// Callers overwrite the fields they were given, so an explicit zero survives to Validate.
func NewRequest(cfg types.SolverConfig, periodsPerYear int) Request {
	return Request{
		PeriodsPerYear: periodsPerYear,
		Tolerance:      cfg.Tolerance,
		MaxIterations:  cfg.MaxIterations,
	}
}

// Validate rejects non-finite values and inputs the solver cannot accept.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fieldMessage(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "finite":
		return fmt.Sprintf("%s must be a finite number", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

func (r Request) Spec() types.BondSpec {
	return types.BondSpec{
		FaceValue:        r.FaceValue,
		AnnualCouponRate: r.CouponRate / 100,
		YearsToMaturity:  r.Years,
		PeriodsPerYear:   r.PeriodsPerYear,
	}
}

func (r Request) SolverConfig() types.SolverConfig {
	return types.SolverConfig{
		Tolerance:     r.Tolerance,
		MaxIterations: r.MaxIterations,
	}
}
