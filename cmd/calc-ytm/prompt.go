package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"benritz/ytm/internal/calc"
)

// prompter asks for the bond inputs one line at a time.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) float(prompt string) (float64, error) {
	s, err := p.line(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// Request prompts for each bond input on top of base. An empty or non-numeric
// periods answer keeps base.PeriodsPerYear; any number, zero included, replaces it.
func (p *prompter) Request(base calc.Request) (calc.Request, error) {
	var err error

	req := base
	defaultPeriods := base.PeriodsPerYear

	fmt.Fprint(p.out, "Yield-to-Maturity (YTM) calculator\n")

	if req.FaceValue, err = p.float("Enter face/par value (e.g., 1000): "); err != nil {
		return req, err
	}
	if req.CouponRate, err = p.float("Enter annual coupon rate in percent (e.g., 8 for 8%): "); err != nil {
		return req, err
	}
	if req.Years, err = p.float("Enter years to maturity (e.g., 10): "); err != nil {
		return req, err
	}
	if req.Price, err = p.float("Enter current market price: "); err != nil {
		return req, err
	}

	s, err := p.line(fmt.Sprintf("Enter periods per year (1=annual, 2=semiannual, 4=quarterly) [default=%d]: ", defaultPeriods))
	if err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			req.PeriodsPerYear = n
		}
	}

	return req, nil
}
