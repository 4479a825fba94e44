package careers

import (
	"fmt"
	"strings"
	"time"
)

const underOneMonth = "1ヶ月未満"

// TenureMonths computes the total months spanned by a company's career
// group, from the earliest start to the latest end (or now for a current
// stint). Returns 0 when no record carries a parseable start date.
func TenureMonths(records []Career, now time.Time) int {
	var (
		start    time.Time
		end      time.Time
		haveSpan bool
	)
	for _, c := range records {
		s, err := time.Parse(monthLayout, strings.TrimSpace(c.StartDate))
		if err != nil {
			continue
		}
		e := now
		if !c.IsCurrent() {
			parsed, err := time.Parse(monthLayout, strings.TrimSpace(c.EndDate))
			if err != nil {
				continue
			}
			e = parsed
		}
		if !haveSpan {
			start, end, haveSpan = s, e, true
			continue
		}
		if s.Before(start) {
			start = s
		}
		if e.After(end) {
			end = e
		}
	}
	if !haveSpan {
		return 0
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// FormatTenure renders a month count as "N年Mヶ月", omitting zero
// components; totals under one month render a fixed string.
func FormatTenure(months int) string {
	if months < 1 {
		return underOneMonth
	}
	years := months / 12
	rem := months % 12
	switch {
	case years == 0:
		return fmt.Sprintf("%dヶ月", rem)
	case rem == 0:
		return fmt.Sprintf("%d年", years)
	default:
		return fmt.Sprintf("%d年%dヶ月", years, rem)
	}
}

// Tenure is a convenience wrapper combining the two steps.
func Tenure(records []Career, now time.Time) string {
	return FormatTenure(TenureMonths(records, now))
}
