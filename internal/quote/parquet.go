package quote

import (
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

var SourceParquet = "Parquet"

// ParquetLoader reads a quote from a parquet snapshot with one Quote per row.
type ParquetLoader struct {
	Location string
	Fetcher  *Fetcher
	Log      zerolog.Logger
}

func (c *ParquetLoader) Load(ctx context.Context, id string) (*Quote, error) {
	path, cleanup, err := c.Fetcher.Fetch(ctx, c.Location, "quotes-*.parquet")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rows, err := parquet.ReadFile[Quote](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Location, err)
	}

	if len(rows) == 0 {
		return nil, ErrDataUnavailable
	}

	for i := range rows {
		q := &rows[i]
		if !q.Matches(id) {
			continue
		}

		c.Log.Debug().Int("row", i).Str("isin", q.ISIN).Msg("found quote")

		if q.Source == "" {
			q.Source = SourceParquet
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		return q, nil
	}

	return nil, fmt.Errorf("%w: %s in %d %s rows", ErrQuoteNotFound, id, len(rows), SourceParquet)
}

func (c *ParquetLoader) Source() string {
	return SourceParquet
}
