package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Location string
	Date     time.Time
	Fetcher  *Fetcher
	Log      zerolog.Logger
}

// NewLoader returns the loader for kind: dmo, dividenddata or parquet.
func NewLoader(kind string, opts Options) (Loader, error) {
	if opts.Fetcher == nil {
		opts.Fetcher = &Fetcher{Log: opts.Log}
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}

	// midnight in the date's own zone; Truncate would round in UTC
	y, m, d := opts.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, opts.Date.Location())

	switch strings.ToLower(kind) {
	case "dmo":
		return &DMOLoader{Location: opts.Location, Date: date, Fetcher: opts.Fetcher, Log: opts.Log}, nil
	case "dividenddata":
		return &DividendDataLoader{URL: opts.Location, Date: date, Log: opts.Log}, nil
	case "parquet":
		if opts.Location == "" {
			return nil, fmt.Errorf("parquet source needs a location")
		}
		return &ParquetLoader{Location: opts.Location, Fetcher: opts.Fetcher, Log: opts.Log}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownSource, kind)
}
