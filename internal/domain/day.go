package domain

import (
	"fmt"
	"time"
)

// WeekDays is the length of the "within the week" date menu.
const WeekDays = 7

// Day is a calendar date a customer may pick for an order
type Day struct {
	Date time.Time
}

// DateString returns date in YYYY-MM-DD format, used as button payload
func (d Day) DateString() string {
	return d.Date.Format("2006-01-02")
}

// OrderString returns the date as stored on an order
func (d Day) OrderString() string {
	return d.Date.Format("02.01.2006")
}

// QuickLabel returns the label used in the short date menu,
// relative to now: "Сегодня (15.10)", "Завтра (16.10)", "Послезавтра (17.10)"
func (d Day) QuickLabel(now time.Time) string {
	short := d.Date.Format("02.01")

	switch daysBetween(now, d.Date) {
	case 0:
		return fmt.Sprintf("Сегодня (%s)", short)
	case 1:
		return fmt.Sprintf("Завтра (%s)", short)
	case 2:
		return fmt.Sprintf("Послезавтра (%s)", short)
	}

	return d.WeekLabel()
}

// WeekLabel returns weekday and short date, e.g. "Чт 15.10"
func (d Day) WeekLabel() string {
	weekdays := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return weekdays[d.Date.Weekday()] + " " + d.Date.Format("02.01")
}

// QuickDays returns today, tomorrow and the day after
func QuickDays(now time.Time) []Day {
	return days(now, 3)
}

// WeekDaysFrom returns the next seven calendar dates starting today
func WeekDaysFrom(now time.Time) []Day {
	return days(now, WeekDays)
}

// ParseDay parses a YYYY-MM-DD button payload
func ParseDay(value string, loc *time.Location) (Day, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return Day{Date: t}, nil
}

func days(now time.Time, n int) []Day {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Day{Date: start.AddDate(0, 0, i)})
	}
	return out
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
