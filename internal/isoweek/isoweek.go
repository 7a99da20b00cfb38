// Package isoweek implements ISO 8601 week-date arithmetic: week 1 is the
// week containing the year's first Thursday, weeks run Monday to Sunday.
package isoweek

import "time"

// Monday returns the Monday of the given ISO week at midnight UTC.
//
// It uses the nearest-Thursday rule: shift January 1st to the Monday of its
// week; if January 1st falls on Friday, Saturday or Sunday that Monday
// belongs to the previous year's last week, so week 1 starts one week later.
func Monday(isoYear, isoWeek int) time.Time {
	jan1 := time.Date(isoYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	// 0 = Monday ... 6 = Sunday
	offset := (int(jan1.Weekday()) + 6) % 7

	var week1Monday time.Time
	if offset <= 3 {
		// Jan 1 is Mon-Thu: its week contains the first Thursday.
		week1Monday = jan1.AddDate(0, 0, -offset)
	} else {
		// Jan 1 is Fri-Sun: week 1 starts the following Monday.
		week1Monday = jan1.AddDate(0, 0, 7-offset)
	}

	return week1Monday.AddDate(0, 0, (isoWeek-1)*7)
}

// DateOfWeekday returns the calendar date of a weekday (1 = Monday ...
// 7 = Sunday) within the given ISO week.
func DateOfWeekday(isoYear, isoWeek, dayOfWeek int) time.Time {
	return Monday(isoYear, isoWeek).AddDate(0, 0, dayOfWeek-1)
}

// Current returns the ISO year and week of the given instant.
func Current(now time.Time) (isoYear, isoWeek int) {
	return now.ISOWeek()
}

// Weeks returns the number of ISO weeks in a year (52 or 53).
func Weeks(isoYear int) int {
	// December 28th is always in the year's last ISO week.
	_, week := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()

	return week
}
