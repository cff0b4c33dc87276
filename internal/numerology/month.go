package numerology

import (
	"fmt"
	"time"
)

// Day is one entry of the month ring.
type Day struct {
	Date      time.Time `json:"date"`
	Formatted string    `json:"formatted"`
	Value     int       `json:"value"`
}

// MonthRequest describes a custom month matrix. Energy fills the third pillar
// in place of a year; callers usually pass the age in full years.
type MonthRequest struct {
	BirthDay   int
	EventMonth int
	Energy     int

	// Range selects the ring days. Nil means the calendar month of Now, or of
	// the wall clock when Now is zero.
	Range *DateRange
	Now   time.Time
	// DayEnergy supplies an optional per-day value, reduced before use.
	DayEnergy func(time.Time) int
}

// MonthForecast is the custom three-pillar matrix with its day ring.
type MonthForecast struct {
	Matrix   Matrix    `json:"matrix"`
	Inner    Inner     `json:"inner"`
	Channels Channels  `json:"channels"`
	Destiny  Destiny   `json:"destiny"`
	Range    DateRange `json:"range"`
	Days     []Day     `json:"days"`
}

// NewMonthForecast derives the month matrix and lays out one ring entry per day.
func NewMonthForecast(req MonthRequest) MonthForecast {
	m := FromPillars(req.BirthDay, req.EventMonth, req.Energy)
	in := NewInner(m)

	var r DateRange
	switch {
	case req.Range != nil:
		r = *req.Range
	case req.Now.IsZero():
		r = MonthRange(time.Now())
	default:
		r = MonthRange(req.Now)
	}

	days := make([]Day, 0, r.Days())
	for d := DateOf(r.Start).Time(); d.Before(r.End); d = d.AddDate(0, 0, 1) {
		day := Day{
			Date:      d,
			Formatted: fmt.Sprintf("%02d.%02d", d.Day(), int(d.Month())),
		}
		if req.DayEnergy != nil {
			day.Value = Reduce22(req.DayEnergy(d))
		}
		days = append(days, day)
	}

	return MonthForecast{
		Matrix:   m,
		Inner:    in,
		Channels: NewChannels(m, in),
		Destiny:  NewDestiny(m),
		Range:    r,
		Days:     days,
	}
}
