package quote

import (
	"regexp"
	"strconv"
	"strings"
)

var couponRe = regexp.MustCompile(`^(\d+(?:\s+\d+\/\d+)?|\d+\/\d+|\d+(?:\.\d+)?|\d[¼½¾])(%)`)

var vulgarFractions = map[string]string{
	"½": " 1/2",
	"¼": " 1/4",
	"¾": " 3/4",
}

// parseCouponPercentage parses the coupon from a gilt description in the following formats
// 0 5/8% Treasury Gilt 2025,
// 2% Treasury Gilt 2025,
// 3½% Treasury Gilt 2025,
// 4.25% Treasury Gilt 2055
//
//	desc: bond description
//
// Returns:
//
//	Coupon percentage
func parseCouponPercentage(desc string) (float64, error) {
	match := couponRe.FindStringSubmatch(strings.TrimSpace(desc))
	if len(match) < 3 {
		return 0, ErrInvalidCoupon
	}

	m := match[1]

	for sym, frac := range vulgarFractions {
		if strings.HasSuffix(m, sym) {
			m = strings.TrimSuffix(m, sym) + frac
		}
	}

	if !strings.Contains(m, "/") {
		val, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, ErrInvalidCoupon
		}
		return val, nil
	}

	parts := strings.Fields(m)
	switch len(parts) {
	case 1:
		// fraction only
		return parseFraction(parts[0])
	case 2:
		// mixed number
		whole, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, ErrInvalidCoupon
		}
		frac, err := parseFraction(parts[1])
		if err != nil {
			return 0, err
		}
		return float64(whole) + frac, nil
	}

	return 0, ErrInvalidCoupon
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, ErrInvalidCoupon
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, ErrInvalidCoupon
	}

	d, err := strconv.Atoi(den)
	if err != nil || d == 0 {
		return 0, ErrInvalidCoupon
	}

	return float64(n) / float64(d), nil
}
