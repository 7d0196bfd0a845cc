package utils

import (
	"time"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

// IsLeapYear reports whether y has a February 29th.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the last valid day of month m in year y.
func DaysInMonth(y int, m time.Month) int {
	switch m {
	case time.February:
		if IsLeapYear(y) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// AddMonths moves d forward by n calendar months. When the target month is
// shorter than d's day-of-month the result is clamped to the target month's
// last day, so Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap year).
func AddMonths(d models.Date, n int) models.Date {
	m := int(d.Month) - 1 + n
	yearShift := m / 12
	m %= 12
	if m < 0 {
		m += 12
		yearShift--
	}
	y := d.Year + yearShift
	month := time.Month(m + 1)

	day := d.Day
	if last := DaysInMonth(y, month); day > last {
		day = last
	}
	return models.NewDate(y, month, day)
}
