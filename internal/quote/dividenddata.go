package quote

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

var (
	SourceDividendData     = "DividendData"
	DividendDataURL        = "https://www.dividenddata.co.uk/uk-gilts-prices-yields.py"
	dividendDataDatePrefix = "Last updated: "
)

// DividendDataLoader scrapes the gilt prices table from dividenddata.co.uk.
type DividendDataLoader struct {
	URL     string
	Date    time.Time
	Timeout time.Duration
	Log     zerolog.Logger
}

func (c *DividendDataLoader) Load(ctx context.Context, id string) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x := colly.NewCollector()
	if c.Timeout > 0 {
		x.SetRequestTimeout(c.Timeout)
	}

	// the page is updated daily, the settlement date is the page date
	var dataTs time.Time

	x.OnHTML("label", func(e *colly.HTMLElement) {
		if strings.HasPrefix(e.Text, dividendDataDatePrefix) {
			s := strings.TrimSpace(strings.TrimPrefix(e.Text, dividendDataDatePrefix))
			dataTs, _ = time.Parse("02 Jan 2006", s)
		}
	})

	var (
		found    *Quote
		foundErr error
		rows     int
	)

	x.OnHTML("#mainbody tr", func(e *colly.HTMLElement) {
		if found != nil {
			return
		}
		q, err := c.readRow(e)
		if q == nil {
			return
		}
		rows++
		if q.Matches(id) {
			found, foundErr = q, err
		}
	})

	url := c.URL
	if url == "" {
		url = DividendDataURL
	}

	c.Log.Debug().Str("url", url).Msg("fetching")

	if err := x.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to get data: %w", err)
	}

	if rows == 0 {
		return nil, ErrDataUnavailable
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s in %d %s rows", ErrQuoteNotFound, id, rows, SourceDividendData)
	}

	if foundErr != nil {
		return nil, fmt.Errorf("%s: %w", id, foundErr)
	}

	found.SettlementDate = c.Date
	if !dataTs.IsZero() {
		found.SettlementDate = dataTs
	}

	if err := found.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	return found, nil
}

func (c *DividendDataLoader) Source() string {
	return SourceDividendData
}

const (
	ddColTicker           = 0
	ddColDesc             = 1
	ddColCoupon           = 2
	ddColMaturityDate     = 3
	ddColMaturityDuration = 4
	ddColPrice            = 5
	ddColMaturityYield    = 6
)

// readRow returns nil for rows without cells, such as the table header.
// Otherwise it returns the quote and the first field error, if any.
func (c *DividendDataLoader) readRow(e *colly.HTMLElement) (*Quote, error) {
	q := NewUKGilt(SourceDividendData, c.Date)
	cells := 0

	var rowErr error
	setErr := func(err error) {
		if rowErr == nil {
			rowErr = err
		}
	}

	e.ForEach("td", func(col int, el *colly.HTMLElement) {
		cells++
		text := strings.TrimSpace(el.Text)

		switch col {
		case ddColTicker:
			q.Ticker = text
			if q.Ticker == "" {
				setErr(ErrInvalidTicker)
			}
		case ddColDesc:
			q.Desc = text
			if q.Desc == "" {
				setErr(ErrInvalidDesc)
			}
		case ddColCoupon:
			if coupon, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64); err == nil {
				q.Coupon = coupon
			} else {
				setErr(ErrInvalidCoupon)
			}
		case ddColMaturityDate:
			if ts, err := time.Parse("02-Jan-2006", text); err == nil {
				q.MaturityDate = ts
			} else {
				setErr(ErrInvalidMaturityDate)
			}
		case ddColMaturityDuration, ddColMaturityYield:
			// ignore, calculated from maturity date and price
		case ddColPrice:
			s := strings.TrimPrefix(strings.TrimPrefix(text, "Â"), "£")
			if price, err := strconv.ParseFloat(s, 64); err == nil {
				q.CleanPrice = price
			} else {
				setErr(ErrInvalidCleanPrice)
			}
		}
	})

	if cells == 0 {
		return nil, nil
	}

	return q, rowErr
}
