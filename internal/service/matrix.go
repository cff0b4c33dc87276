package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/matrix-service/internal/cache"
	"github.com/Dan9191/matrix-service/internal/numerology"
)

// MonthInput is a validated-on-entry month forecast request
type MonthInput struct {
	BirthDay   int
	EventMonth int
	Energy     int
	Start      *time.Time
	End        *time.Time
}

const (
	// maxRangeDays bounds an explicit month ring
	maxRangeDays = 366
	// maxYear is the last year a result may touch; later timestamps do not
	// encode as RFC 3339
	maxYear = 9999
)

// Chart computes the natal chart of a birth date
func (s *Service) Chart(ctx context.Context, d numerology.CalendarDate) (numerology.Chart, error) {
	if !d.Valid() {
		return numerology.Chart{}, fmt.Errorf("%w: %v", ErrInvalidInput, numerology.ErrInvalidDate)
	}

	key := cache.Key("chart", d.String())
	var chart numerology.Chart
	if s.cache != nil && s.cache.Get(ctx, key, &chart) {
		return chart, nil
	}

	chart = numerology.NewChart(d)
	if s.cache != nil {
		s.cache.Set(ctx, key, chart)
	}
	s.log.WithField("date", d.String()).Debug("Chart computed")
	return chart, nil
}

// MoneyCode computes the money code of a birth date
func (s *Service) MoneyCode(d numerology.CalendarDate) (numerology.MoneyCode, error) {
	if !d.Valid() {
		return numerology.MoneyCode{}, fmt.Errorf("%w: %v", ErrInvalidInput, numerology.ErrInvalidDate)
	}
	return numerology.NewMoneyCode(d.Day, d.Month, d.Year), nil
}

// YearForecast computes the personal year ending in targetYear
func (s *Service) YearForecast(ctx context.Context, day, month, targetYear int) (numerology.YearForecast, error) {
	// Feb 29 is accepted: the anchor rolls to Mar 1 in common years.
	if !(numerology.CalendarDate{Day: day, Month: month, Year: 2000}).Valid() || targetYear < 2 || targetYear > maxYear {
		return numerology.YearForecast{}, fmt.Errorf("%w: day %d, month %d, year %d", ErrInvalidInput, day, month, targetYear)
	}

	key := cache.Key("year", day, month, targetYear)
	var f numerology.YearForecast
	if s.cache != nil && s.cache.Get(ctx, key, &f) {
		return f, nil
	}

	f = numerology.NewYearForecast(day, month, targetYear)
	if s.cache != nil {
		s.cache.Set(ctx, key, f)
	}
	return f, nil
}

// MonthForecast computes the custom month matrix. Without an explicit range the
// ring covers the current calendar month.
func (s *Service) MonthForecast(in MonthInput) (numerology.MonthForecast, error) {
	if in.BirthDay < 1 || in.BirthDay > 31 || in.EventMonth < 1 || in.EventMonth > 12 || in.Energy < 0 {
		return numerology.MonthForecast{}, fmt.Errorf("%w: day %d, month %d, energy %d", ErrInvalidInput, in.BirthDay, in.EventMonth, in.Energy)
	}

	req := numerology.MonthRequest{
		BirthDay:   in.BirthDay,
		EventMonth: in.EventMonth,
		Energy:     in.Energy,
		Now:        s.now(),
	}
	if in.Start != nil || in.End != nil {
		if in.Start == nil || in.End == nil {
			return numerology.MonthForecast{}, fmt.Errorf("%w: start and end must be given together", ErrInvalidInput)
		}
		r := numerology.DateRange{Start: *in.Start, End: *in.End}
		if r.Start.Year() < 1 || r.End.Year() > maxYear {
			return numerology.MonthForecast{}, fmt.Errorf("%w: range must lie within years 1 to %d", ErrInvalidInput, maxYear)
		}
		if n := r.Days(); n == 0 || n > maxRangeDays {
			return numerology.MonthForecast{}, fmt.Errorf("%w: range must cover 1 to %d days", ErrInvalidInput, maxRangeDays)
		}
		req.Range = &r
	}
	return numerology.NewMonthForecast(req), nil
}

// CurrentPeriod is the forecast slice for one date on a given day
type CurrentPeriod struct {
	Date    numerology.CalendarDate  `json:"date"`
	Age     int                      `json:"age"`
	Year    numerology.YearForecast  `json:"year"`
	Segment numerology.Segment       `json:"segment"`
	Month   numerology.MonthForecast `json:"month"`
}

// CurrentPeriod locates today in the personal year of birth and builds the month
// forecast for that segment, using the age as the energy pillar
func (s *Service) CurrentPeriod(ctx context.Context, birth numerology.CalendarDate) (CurrentPeriod, error) {
	if !birth.Valid() {
		return CurrentPeriod{}, fmt.Errorf("%w: %v", ErrInvalidInput, numerology.ErrInvalidDate)
	}
	now := s.now()
	today := numerology.DateOf(now)

	// The personal year containing today ends in the year of the next birthday.
	// The later ring is tried first: for a Feb 29 birthday it starts on the
	// day the earlier ring still covers.
	var year numerology.YearForecast
	var seg numerology.Segment
	for _, target := range []int{today.Year + 1, today.Year} {
		f, err := s.YearForecast(ctx, birth.Day, birth.Month, target)
		if err != nil {
			return CurrentPeriod{}, err
		}
		if sg, ok := f.SegmentAt(now); ok {
			year, seg = f, sg
			break
		}
	}

	age := numerology.Age(birth, now)
	r := seg.Range()
	month := numerology.NewMonthForecast(numerology.MonthRequest{
		BirthDay:   birth.Day,
		EventMonth: today.Month,
		Energy:     age,
		Range:      &r,
		Now:        now,
	})
	return CurrentPeriod{Date: birth, Age: age, Year: year, Segment: seg, Month: month}, nil
}
