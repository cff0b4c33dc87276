package numerology

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a string or triple is not a real calendar date.
var ErrInvalidDate = errors.New("invalid calendar date")

// CalendarDate is a plain day/month/year triple.
type CalendarDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Valid reports whether the triple names an existing Gregorian day.
func (d CalendarDate) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Year < 1 {
		return false
	}
	return d.Day <= DaysIn(time.Month(d.Month), d.Year)
}

// Time returns midnight UTC of the date. Out-of-range fields are normalized.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Day: d, Month: int(m), Year: y}
}

// ParseDate accepts YYYY-MM-DD and DD.MM.YYYY.
func ParseDate(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	var parts []string
	var d CalendarDate
	switch {
	case strings.Count(s, "-") == 2:
		parts = strings.Split(s, "-")
		parts[0], parts[2] = parts[2], parts[0]
	case strings.Count(s, ".") == 2:
		parts = strings.Split(s, ".")
	default:
		return d, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return d, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d = CalendarDate{Day: nums[0], Month: nums[1], Year: nums[2]}
	if !d.Valid() {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysIn returns the length of month m in year.
func DaysIn(m time.Month, year int) int {
	if m == time.February && IsLeap(year) {
		return 29
	}
	return monthDays[m-1]
}

// DateRange is a half-open interval of calendar days [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days in the range.
func (r DateRange) Days() int {
	if !r.End.After(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()+12) / 24
}

// MonthRange returns the calendar month containing t.
func MonthRange(t time.Time) DateRange {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, 0)}
}

// Age returns the full years elapsed between birth and on.
func Age(birth CalendarDate, on time.Time) int {
	y, m, d := on.Date()
	age := y - birth.Year
	if int(m) < birth.Month || (int(m) == birth.Month && d < birth.Day) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
