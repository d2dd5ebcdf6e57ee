// Package week implements ISO-8601 week arithmetic: materializing the seven
// dates of a week and stepping between weeks across 52/53-week year
// boundaries.
package week

import (
	"fmt"
	"time"

	"github.com/dinnerplan/backend/internal/models"
)

// Week identifies one ISO week of a year.
type Week struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

// Current returns the ISO week containing today.
func Current() Week {
	year, wk := time.Now().ISOWeek()
	return Week{Week: wk, Year: year}
}

// Of returns the ISO week containing the given date.
func Of(d models.Date) Week {
	year, wk := d.Time.ISOWeek()
	return Week{Week: wk, Year: year}
}

// Valid reports whether the week number exists in its year.
func (w Week) Valid() bool {
	return w.Week >= 1 && w.Week <= WeeksInYear(w.Year)
}

// Dates returns the Monday through Sunday dates of the week. It fails for a
// week number the year does not have; callers treat anything other than
// seven dates as an error.
func (w Week) Dates() ([7]models.Date, error) {
	var dates [7]models.Date
	if !w.Valid() {
		return dates, fmt.Errorf("no week %d in year %d", w.Week, w.Year)
	}
	monday := firstMonday(w.Year).AddDays((w.Week - 1) * 7)
	for i := range dates {
		dates[i] = monday.AddDays(i)
	}
	return dates, nil
}

// Next adds delta ISO weeks, folding the week number into range one year at
// a time so 53-week years are stepped over correctly. Terminates for any
// finite delta.
func (w Week) Next(delta int) Week {
	wk, year := w.Week+delta, w.Year
	for wk > WeeksInYear(year) {
		wk -= WeeksInYear(year)
		year++
	}
	for wk < 1 {
		year--
		wk += WeeksInYear(year)
	}
	return Week{Week: wk, Year: year}
}

// WeeksInYear returns 52 or 53: the ISO week of December 28th, which always
// falls in the year's last week.
func WeeksInYear(year int) int {
	_, wk := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return wk
}

// firstMonday returns the Monday of ISO week 1, via the rule that January
// 4th is always in week 1.
func firstMonday(year int) models.Date {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday()+6) % 7 // days since Monday
	return models.DateOf(jan4).AddDays(-offset)
}
