package scheduling

import (
	"math"
	"time"
)

// fixedHolidays are the fixed-date Japanese national holidays as (month, day).
// The emperor's birthday is the Reiwa-era Feb 23 date.
var fixedHolidays = [][2]int{
	{1, 1},   // New Year's Day
	{2, 11},  // National Foundation Day
	{2, 23},  // Emperor's Birthday
	{4, 29},  // Showa Day
	{5, 3},   // Constitution Memorial Day
	{5, 4},   // Greenery Day
	{5, 5},   // Children's Day
	{8, 11},  // Mountain Day
	{11, 3},  // Culture Day
	{11, 23}, // Labor Thanksgiving Day
}

// nthMonday returns the day of month of the nth Monday of year/month.
func nthMonday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// Offset from the 1st to the first Monday, with Monday as weekday 0.
	offset := (7 - (int(first.Weekday()) + 6) % 7) % 7
	return (n-1)*7 + 1 + offset
}

// vernalEquinoxDay approximates the March equinox day for years 2000-2099.
func vernalEquinoxDay(year int) int {
	return int(math.Floor(20.8431 + 0.242194*float64(year-1980) - math.Floor(float64(year-1980)/4)))
}

// autumnalEquinoxDay approximates the September equinox day for years 2000-2099.
func autumnalEquinoxDay(year int) int {
	return int(math.Floor(23.2488 + 0.242194*float64(year-1980) - math.Floor(float64(year-1980)/4)))
}

// IsHoliday reports whether the date is a Japanese national holiday.
// Weekends are not holidays here; callers flag Saturday/Sunday themselves.
func IsHoliday(date time.Time) bool {
	y, m, d := date.Year(), date.Month(), date.Day()
	for _, f := range fixedHolidays {
		if int(m) == f[0] && d == f[1] {
			return true
		}
	}
	switch {
	case m == time.January && d == nthMonday(y, time.January, 2): // Coming of Age Day
		return true
	case m == time.March && d == vernalEquinoxDay(y): // Vernal Equinox Day
		return true
	case m == time.July && d == nthMonday(y, time.July, 3): // Marine Day
		return true
	case m == time.September && d == nthMonday(y, time.September, 3): // Respect for the Aged Day
		return true
	case m == time.September && d == autumnalEquinoxDay(y): // Autumnal Equinox Day
		return true
	case m == time.October && d == nthMonday(y, time.October, 2): // Sports Day
		return true
	}
	return false
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
