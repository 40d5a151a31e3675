package utils

import "time"

// WorkedMinutes derives the minutes actually worked for a report:
// elapsed time between start and end minus the break. Results below
// zero are clamped so a bad row can never drag an aggregate negative.
func WorkedMinutes(startMillis, endMillis int64, breakMinutes int) int {
	elapsed := (endMillis - startMillis) / time.Minute.Milliseconds()
	worked := int(elapsed) - breakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// MonthRange returns the start of the given month and the start of the
// next month as epoch millis. Month 12 rolls over into January of the
// following year.
func MonthRange(year, month int) (int64, int64) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start.UnixMilli(), end.UnixMilli()
}

// WeekOf returns the seven consecutive days of the Monday-start week
// containing the given instant, each truncated to midnight UTC.
func WeekOf(millis int64) [7]time.Time {
	day := time.UnixMilli(millis).UTC().Truncate(24 * time.Hour)

	// time.Weekday counts Sunday as 0; shift so Monday is the origin.
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	var week [7]time.Time
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// SameDay reports whether the given instant falls on the given UTC
// calendar day.
func SameDay(millis int64, day time.Time) bool {
	t := time.UnixMilli(millis).UTC()
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
