package quote

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Quote is the market data for a single bond as read from a source.
// Coupon is a percentage (3.5 is 3.5%).
type Quote struct {
	Source         string
	ISIN           string
	Ticker         string
	Desc           string
	FaceValue      float64
	Coupon         float64
	CleanPrice     float64
	DirtyPrice     float64
	PeriodsPerYear int
	SettlementDate time.Time
	MaturityDate   time.Time
}

func NewUKGilt(source string, settlementDate time.Time) *Quote {
	return &Quote{
		Source:         source,
		FaceValue:      100.0,
		PeriodsPerYear: 2,
		SettlementDate: settlementDate,
	}
}

// Loader finds a single quote by ISIN or ticker.
type Loader interface {
	Load(ctx context.Context, id string) (*Quote, error)
	Source() string
}

var (
	ErrQuoteNotFound                = fmt.Errorf("quote not found")
	ErrUnknownSource                = fmt.Errorf("unknown quote source")
	ErrDataUnavailable              = fmt.Errorf("data unavailable")
	ErrUnsupportedBond              = fmt.Errorf("unsupported bond")
	ErrInvalidRow                   = fmt.Errorf("invalid row")
	ErrInvalidCoupon                = fmt.Errorf("invalid coupon")
	ErrInvalidDesc                  = fmt.Errorf("invalid description")
	ErrInvalidTicker                = fmt.Errorf("invalid ticker")
	ErrInvalidCleanPrice            = fmt.Errorf("invalid clean price")
	ErrInvalidDirtyPrice            = fmt.Errorf("invalid dirty price")
	ErrInvalidFacePrice             = fmt.Errorf("invalid face price")
	ErrInvalidMaturityDate          = fmt.Errorf("invalid maturity date")
	ErrInvalidSettlementDate        = fmt.Errorf("invalid settlement date")
	ErrMaturityDateBeforeSettlement = fmt.Errorf("maturity date is before settlement date")
)

// Matches reports whether id is the quote's ISIN or ticker, ignoring case.
func (q *Quote) Matches(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	return strings.EqualFold(q.ISIN, id) || strings.EqualFold(q.Ticker, id)
}

func (q *Quote) Validate() error {
	if q.SettlementDate.IsZero() {
		return ErrInvalidSettlementDate
	}

	if q.MaturityDate.IsZero() {
		return ErrInvalidMaturityDate
	}

	if q.MaturityDate.Before(q.SettlementDate) {
		return ErrMaturityDateBeforeSettlement
	}

	if q.Coupon < 0 {
		return ErrInvalidCoupon
	}

	if q.FaceValue <= 0 {
		return ErrInvalidFacePrice
	}

	if q.CleanPrice <= 0 {
		return ErrInvalidCleanPrice
	}

	return nil
}

// Years returns the time from settlement to maturity in years, counting
// the days past the last whole year as a fraction of 365.
func (q *Quote) Years() (float64, error) {
	years, days, err := MaturityYears(q.SettlementDate, q.MaturityDate)
	if err != nil {
		return 0, err
	}
	return float64(years) + float64(days)/365.0, nil
}
