package main

import (
	"benritz/ytm/internal/calc"
	"benritz/ytm/internal/config"
	"benritz/ytm/internal/logging"
	"benritz/ytm/internal/quote"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/pbnjay/grate/xls"
	_ "github.com/pbnjay/grate/xlsx"
)

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Printf("Usage: %s [--face-value <num>] [--coupon-rate <percent>] [--years <num>] [--price <num>] [--periods-per-year <int>] [--tolerance <num>] [--max-iterations <int>]\n", prog)
	fmt.Printf("       %s -source dmo|dividenddata|parquet [-location <path|url|s3://bucket/key>] -id <isin|ticker> [overrides]\n", prog)
	fmt.Printf("If no arguments are provided the program will prompt interactively.\n")
	fmt.Printf("Example:\n  %s --face-value 1000 --coupon-rate 8 --years 10 --price 950 --periods-per-year 2\n\n", prog)
	flag.PrintDefaults()
}

func float64Flag(p *float64, names []string, usage string) {
	for _, name := range names {
		flag.Float64Var(p, name, 0, usage)
	}
}

func main() {
	var req calc.Request

	float64Flag(&req.FaceValue, []string{"face-value", "f"}, "Face/par value of the bond")
	float64Flag(&req.CouponRate, []string{"coupon-rate", "c"}, "Annual coupon rate (%) of the bond")
	float64Flag(&req.Years, []string{"years", "y"}, "Years to maturity")
	float64Flag(&req.Price, []string{"price", "p"}, "Current market price of the bond")
	flag.IntVar(&req.PeriodsPerYear, "periods-per-year", 0, "Coupon periods per year (1=annual, 2=semiannual, 4=quarterly), default 2")
	flag.IntVar(&req.PeriodsPerYear, "m", 0, "Coupon periods per year (shorthand)")
	flag.Float64Var(&req.Tolerance, "tolerance", 0, "Price tolerance for convergence, default 1e-9")
	flag.IntVar(&req.MaxIterations, "max-iterations", 0, "Maximum bisection iterations, default 200")

	configPath := flag.String("config", "", "YAML config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	source := flag.String("source", "", "Load the bond from a quote source: dmo, dividenddata or parquet")
	location := flag.String("location", "", "Quote file path, http(s) URL or s3://bucket/key")
	id := flag.String("id", "", "ISIN or ticker of the bond to load from -source")
	profile := flag.String("profile", "", "The AWS profile to use for s3:// locations")
	settlementDateStr := flag.String("settlementdate", "", "Settlement date for quote sources (YYYY-MM-DD), default today")
	helpFlag := flag.Bool("help", false, "Print this help message")
	flag.BoolVar(helpFlag, "h", false, "Print this help message")

	flag.Usage = usage
	flag.Parse()

	if *helpFlag {
		usage()
		return
	}

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx := context.Background()

	applyDefaults(&req, cfg, flagsSet)

	switch {
	case len(os.Args) == 1:
		req, err = newPrompter(os.Stdin, os.Stdout).Request(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case *source != "":
		settlementDate := time.Now()
		if *settlementDateStr != "" {
			if settlementDate, err = time.Parse("2006-01-02", *settlementDateStr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid settlement date: %v\n", err)
				os.Exit(1)
			}
		}

		if *profile != "" {
			cfg.AWS.Profile = *profile
		}

		q, err := loadQuote(ctx, cfg, log, *source, *location, *id, settlementDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load quote: %v\n", err)
			os.Exit(1)
		}

		if err := applyQuote(&req, q, flagsSet); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Bond: %s %s (%s), settlement %s, maturity %s\n",
			q.ISIN, q.Desc, q.Source, q.SettlementDate.Format("2006-01-02"), q.MaturityDate.Format("2006-01-02"))

	default:
		var missing []string
		for _, name := range []string{"face-value", "coupon-rate", "years", "price"} {
			if !flagsSet[name] && !flagsSet[name[:1]] {
				missing = append(missing, "--"+name)
			}
		}
		if len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "Missing required inputs: %s. Use --help for usage or run without args for interactive mode.\n", strings.Join(missing, ", "))
			os.Exit(1)
		}
	}

	log.Debug().
		Float64("face_value", req.FaceValue).
		Float64("coupon_rate", req.CouponRate).
		Float64("years", req.Years).
		Float64("price", req.Price).
		Int("periods_per_year", req.PeriodsPerYear).
		Msg("solving")

	resp, err := calc.Run(req)
	if err != nil {
		if errors.Is(err, calc.ErrInvalidRequest) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to compute YTM: %v\n", err)
		}
		os.Exit(1)
	}

	log.Debug().
		Bool("converged", resp.Result.Converged).
		Int("iterations", resp.Result.Iterations).
		Str("method", string(resp.Result.Method)).
		Float64("residual", resp.Check.Residual).
		Msg("solved")

	if err := resp.WriteText(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadQuote(
	ctx context.Context,
	cfg *config.Config,
	log zerolog.Logger,
	source, location, id string,
	settlementDate time.Time,
) (*quote.Quote, error) {
	if id == "" {
		return nil, fmt.Errorf("-id is required with -source")
	}

	fetcher := &quote.Fetcher{Log: log}

	if strings.HasPrefix(location, "s3://") {
		s3Client, err := quote.NewS3Client(ctx, cfg.AWS.Profile, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		fetcher.S3 = s3Client
	}

	loader, err := quote.NewLoader(source, quote.Options{
		Location: location,
		Date:     settlementDate,
		Fetcher:  fetcher,
		Log:      log,
	})
	if err != nil {
		return nil, err
	}

	return loader.Load(ctx, id)
}

// applyDefaults fills the schedule and solver inputs that were not given on the command line.
func applyDefaults(req *calc.Request, cfg *config.Config, flagsSet map[string]bool) {
	defaults := calc.NewRequest(cfg.Solver, cfg.Bond.PeriodsPerYear)

	if !flagsSet["periods-per-year"] && !flagsSet["m"] {
		req.PeriodsPerYear = defaults.PeriodsPerYear
	}
	if !flagsSet["tolerance"] {
		req.Tolerance = defaults.Tolerance
	}
	if !flagsSet["max-iterations"] {
		req.MaxIterations = defaults.MaxIterations
	}
}

// applyQuote fills req from q, keeping any inputs given explicitly on the command line.
func applyQuote(req *calc.Request, q *quote.Quote, flagsSet map[string]bool) error {
	years, err := q.Years()
	if err != nil {
		return err
	}

	set := func(names ...string) bool {
		for _, name := range names {
			if flagsSet[name] {
				return true
			}
		}
		return false
	}

	if !set("face-value", "f") {
		req.FaceValue = q.FaceValue
	}
	if !set("coupon-rate", "c") {
		req.CouponRate = q.Coupon
	}
	if !set("years", "y") {
		req.Years = years
	}
	if !set("price", "p") {
		req.Price = q.CleanPrice
	}
	if !set("periods-per-year", "m") {
		req.PeriodsPerYear = q.PeriodsPerYear
	}

	return nil
}
