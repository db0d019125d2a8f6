package quote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pbnjay/grate"
	"github.com/rs/zerolog"
)

var SourceDMO = "DMO"

// DMOReportURL is the D10B gilt prices report export for a trade date.
// Other reports with gilt data:
// https://www.dmo.gov.uk/data/pdfdatareport?reportCode=D1A
// https://www.dmo.gov.uk/data/pdfdatareport?reportCode=D9D
func DMOReportURL(date time.Time) string {
	params := fmt.Sprintf("&Trade Date=%02d-%02d-%04d", date.Day(), date.Month(), date.Year())
	return "https://www.dmo.gov.uk/umbraco/surface/DataExport/GetDataExport?reportCode=D10B&exportFormatValue=xls&parameters=" + url.QueryEscape(params)
}

// DMOLoader reads gilt prices from a DMO D10B xls or xlsx export. The readers must
// be registered by importing github.com/pbnjay/grate/xls and github.com/pbnjay/grate/xlsx.
type DMOLoader struct {
	Location string
	Date     time.Time
	Fetcher  *Fetcher
	Log      zerolog.Logger
}

func (c *DMOLoader) Load(ctx context.Context, id string) (*Quote, error) {
	location := c.Location
	if location == "" {
		location = DMOReportURL(c.Date)
	}

	path, cleanup, err := c.Fetcher.Fetch(ctx, location, "gilt-*.xls")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	wb, err := grate.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets, err := wb.List()
	if err != nil {
		return nil, err
	}

	parsed := 0

	for _, sheetName := range sheets {
		sheet, err := wb.Get(sheetName)
		if err != nil {
			return nil, err
		}

		for sheet.Next() {
			q, err := c.parseRow(sheet.Strings())
			if err != nil {
				continue
			}
			parsed++

			if q.Matches(id) {
				c.Log.Debug().Str("sheet", sheetName).Str("isin", q.ISIN).Msg("found gilt")
				if err := q.Validate(); err != nil {
					return nil, fmt.Errorf("%s: %w", q.ISIN, err)
				}
				return q, nil
			}
		}
	}

	if parsed == 0 {
		return nil, ErrDataUnavailable
	}

	return nil, fmt.Errorf("%w: %s in %d %s rows", ErrQuoteNotFound, id, parsed, SourceDMO)
}

func (c *DMOLoader) Source() string {
	return SourceDMO
}

const (
	dmoColISIN        = 0
	dmoColDesc        = 1
	dmoColCleanPrice  = 2
	dmoColDirtyPrice  = 3
	dmoColMaturity    = 7
	dmoMinRowColumns  = 8
	dmoMaturityLayout = "02-Jan-2006"
)

func (c *DMOLoader) parseRow(row []string) (*Quote, error) {
	if len(row) < dmoMinRowColumns {
		return nil, ErrInvalidRow
	}

	isin := strings.TrimSpace(row[dmoColISIN])

	if !strings.HasPrefix(isin, "GB") {
		return nil, ErrInvalidRow
	}

	q := NewUKGilt(SourceDMO, c.Date)
	q.ISIN = isin
	q.Desc = strings.TrimSpace(row[dmoColDesc])

	if strings.Contains(strings.ToLower(q.Desc), "index-linked") {
		return nil, ErrUnsupportedBond
	}

	coupon, err := parseCouponPercentage(q.Desc)
	if err != nil {
		return nil, err
	}
	q.Coupon = coupon

	cleanPrice, err := strconv.ParseFloat(strings.TrimSpace(row[dmoColCleanPrice]), 64)
	if err != nil {
		return nil, ErrInvalidCleanPrice
	}
	q.CleanPrice = cleanPrice

	dirtyPrice, err := strconv.ParseFloat(strings.TrimSpace(row[dmoColDirtyPrice]), 64)
	if err != nil {
		return nil, ErrInvalidDirtyPrice
	}
	q.DirtyPrice = dirtyPrice

	ts, err := time.Parse(dmoMaturityLayout, strings.TrimSpace(row[dmoColMaturity]))
	if err != nil {
		return nil, ErrInvalidMaturityDate
	}
	q.MaturityDate = ts

	return q, nil
}
