package numerology

import "time"

// Segment is one personal month of the year ring. End is inclusive.
type Segment struct {
	Seq   int       `json:"seq"`
	Label int       `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value int       `json:"value"`
}

// Days returns the segment length.
func (s Segment) Days() int {
	return DateRange{Start: s.Start, End: s.End.AddDate(0, 0, 1)}.Days()
}

// Range returns the segment as a half-open range, ready for a month forecast.
func (s Segment) Range() DateRange {
	return DateRange{Start: s.Start, End: s.End.AddDate(0, 0, 1)}
}

// Contains reports whether t falls on a day of the segment.
func (s Segment) Contains(t time.Time) bool {
	day := DateOf(t).Time()
	return !day.Before(s.Start) && !day.After(s.End)
}

// YearForecast is the personal-year matrix and its twelve-segment ring.
type YearForecast struct {
	BirthDay   int         `json:"birth_day"`
	BirthMonth int         `json:"birth_month"`
	TargetYear int         `json:"target_year"`
	Anchor     time.Time   `json:"anchor"`
	Matrix     Matrix      `json:"matrix"`
	Inner      Inner       `json:"inner"`
	Channels   Channels    `json:"channels"`
	Segments   [12]Segment `json:"segments"`
}

// NewYearForecast builds the forecast for the personal year that ends in
// targetYear. The cycle runs birthday to birthday, so the anchor is the
// birthday in targetYear-1. A Feb 29 birthday in a common anchor year rolls
// over to Mar 1. Every ring spans exactly one year from its anchor, so when
// that rolled anchor precedes a leap year the ring also covers Feb 29 of
// targetYear, the first day of the next ring. Callers picking the ring for a
// date should prefer the later target year.
func NewYearForecast(birthDay, birthMonth, targetYear int) YearForecast {
	anchorYear := targetYear - 1
	yearPillar := DigitSum(anchorYear)

	m := FromPillars(birthDay, birthMonth, yearPillar)
	in := NewInner(m)
	f := YearForecast{
		BirthDay:   birthDay,
		BirthMonth: birthMonth,
		TargetYear: targetYear,
		Anchor:     time.Date(anchorYear, time.Month(birthMonth), birthDay, 0, 0, 0, 0, time.UTC),
		Matrix:     m,
		Inner:      in,
		Channels:   NewChannels(m, in),
	}

	leap := hasLeapDay(f.Anchor, f.Anchor.AddDate(1, 0, 0))
	cur := f.Anchor
	for i := range f.Segments {
		month := time.Month((int(f.Anchor.Month())-1+i)%12 + 1)
		n := monthDays[month-1]
		if month == time.February && leap {
			n = 29
		}
		end := cur.AddDate(0, 0, n-1)
		f.Segments[i] = Segment{
			Seq:   i,
			Label: ringLabel(i),
			Start: cur,
			End:   end,
			Value: FromPillars(birthDay, i+1, yearPillar).Center(),
		}
		cur = end.AddDate(0, 0, 1)
	}
	return f
}

// SegmentAt finds the segment covering t.
func (f YearForecast) SegmentAt(t time.Time) (Segment, bool) {
	for _, s := range f.Segments {
		if s.Contains(t) {
			return s, true
		}
	}
	return Segment{}, false
}

// Span returns the whole year covered by the ring.
func (f YearForecast) Span() DateRange {
	return DateRange{Start: f.Segments[0].Start, End: f.Segments[11].End.AddDate(0, 0, 1)}
}

// ringLabel numbers the ring like a clock face: the first segment sits at 12.
func ringLabel(seq int) int {
	if seq == 0 {
		return 12
	}
	return seq
}

// hasLeapDay reports whether a Feb 29 lies in [start, end).
func hasLeapDay(start, end time.Time) bool {
	for y := start.Year(); y <= end.Year(); y++ {
		if !IsLeap(y) {
			continue
		}
		d := time.Date(y, time.February, 29, 0, 0, 0, 0, time.UTC)
		if !d.Before(start) && d.Before(end) {
			return true
		}
	}
	return false
}
