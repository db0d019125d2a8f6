package quote

import "time"

// anniversary is the settlement month and day in year. A 29 February settlement
// falls on 28 February in non-leap years.
func anniversary(settlementDate time.Time, year int) time.Time {
	month, day := settlementDate.Month(), settlementDate.Day()
	if lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MaturityYears splits the time from settlement to maturity into whole years
// and the remaining days.
func MaturityYears(settlementDate, maturityDate time.Time) (int, int, error) {
	if maturityDate.Before(settlementDate) {
		return 0, 0, ErrMaturityDateBeforeSettlement
	}

	years := maturityDate.Year() - settlementDate.Year()

	end := time.Date(maturityDate.Year(), maturityDate.Month(), maturityDate.Day(), 0, 0, 0, 0, time.UTC)
	start := anniversary(settlementDate, maturityDate.Year())

	if start.After(end) {
		years--
		start = anniversary(settlementDate, maturityDate.Year()-1)
	}

	days := int(end.Sub(start).Hours() / 24)

	return years, days, nil
}
