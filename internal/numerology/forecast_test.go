package numerology

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewYearForecast_AnchorAndMatrix(t *testing.T) {
	f := NewYearForecast(15, 5, 2025)

	assert.Equal(t, date(2024, time.May, 15), f.Anchor)
	assert.Equal(t, FromPillars(15, 5, 8), f.Matrix)
	assert.Equal(t, Inner{A: 4, B: 5, C: 7}, f.Inner)
	assert.Equal(t, [3]int{5, 4, 7}, f.Channels.Money)
}

func TestNewYearForecast_CommonYearSegments(t *testing.T) {
	f := NewYearForecast(15, 5, 2025)

	wantDays := []int{31, 30, 31, 31, 30, 31, 30, 31, 31, 28, 31, 30}
	for i, s := range f.Segments {
		assert.Equal(t, i, s.Seq)
		assert.Equal(t, wantDays[i], s.Days(), "segment %d", i)
	}
	assert.Equal(t, date(2024, time.June, 14), f.Segments[0].End)
	assert.Equal(t, date(2025, time.February, 15), f.Segments[9].Start)
	assert.Equal(t, date(2025, time.March, 14), f.Segments[9].End)
	assert.Equal(t, date(2025, time.May, 14), f.Segments[11].End)
	assert.Equal(t, 12, f.Segments[0].Label)
	assert.Equal(t, 5, f.Segments[5].Label)
}

func TestNewYearForecast_LeapSpan(t *testing.T) {
	f := NewYearForecast(15, 1, 2025)

	feb := f.Segments[1]
	assert.Equal(t, date(2024, time.February, 15), feb.Start)
	assert.Equal(t, 29, feb.Days())
	assert.Equal(t, date(2024, time.March, 14), feb.End)
	assert.Equal(t, 366, f.Span().Days())
}

func TestNewYearForecast_RingProperties(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, 28, 29, 30, 31} {
				if !(CalendarDate{Day: day, Month: month, Year: year}).Valid() {
					continue
				}
				f := NewYearForecast(day, month, year)
				span := DateRange{Start: f.Anchor, End: f.Anchor.AddDate(1, 0, 0)}

				require.Equal(t, span, f.Span(), "%d.%d.%d", day, month, year)
				for i := 1; i < len(f.Segments); i++ {
					require.Equal(t, f.Segments[i-1].End.AddDate(0, 0, 1), f.Segments[i].Start)
				}

				leap := hasLeapDay(span.Start, span.End)
				for _, s := range f.Segments {
					if s.Days() == 28 || s.Days() == 29 {
						require.Equal(t, leap, s.Days() == 29)
					}
					want := FromPillars(day, s.Seq+1, DigitSum(year-1)).Center()
					require.Equal(t, want, s.Value)
				}
			}
		}
	}
}

func TestNewYearForecast_LeapDayBirthday(t *testing.T) {
	f := NewYearForecast(29, 2, 2026)
	assert.Equal(t, date(2025, time.March, 1), f.Anchor)
	assert.Equal(t, 365, f.Span().Days())

	f = NewYearForecast(29, 2, 2025)
	assert.Equal(t, date(2024, time.February, 29), f.Anchor)
	assert.Equal(t, 29, f.Segments[0].Days())
	assert.Equal(t, 366, f.Span().Days())
}

func TestYearForecast_SegmentAt(t *testing.T) {
	f := NewYearForecast(15, 5, 2025)

	s, ok := f.SegmentAt(time.Date(2025, time.February, 20, 18, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 9, s.Seq)

	_, ok = f.SegmentAt(date(2025, time.May, 15))
	assert.False(t, ok)
}

func TestSegment_RangeFeedsMonthForecast(t *testing.T) {
	f := NewYearForecast(15, 1, 2025)
	r := f.Segments[1].Range()

	mf := NewMonthForecast(MonthRequest{BirthDay: 15, EventMonth: 2, Energy: 34, Range: &r})
	require.Len(t, mf.Days, 29)
	assert.Equal(t, "15.02", mf.Days[0].Formatted)
	assert.Equal(t, "14.03", mf.Days[28].Formatted)
}

func TestNewMonthForecast_ZeroNowUsesWallClock(t *testing.T) {
	before := MonthRange(time.Now())
	mf := NewMonthForecast(MonthRequest{BirthDay: 15, EventMonth: 3, Energy: 35})
	after := MonthRange(time.Now())

	assert.True(t, mf.Range.Start.Equal(before.Start) || mf.Range.Start.Equal(after.Start),
		"range starts %s", mf.Range.Start)
	assert.Equal(t, mf.Range.Days(), len(mf.Days))
	assert.Greater(t, mf.Range.Start.Year(), 1)
}

func TestNewMonthForecast_DefaultsToCurrentMonth(t *testing.T) {
	mf := NewMonthForecast(MonthRequest{
		BirthDay:   15,
		EventMonth: 3,
		Energy:     35,
		Now:        time.Date(2024, time.February, 10, 13, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, FromPillars(15, 3, 8), mf.Matrix)
	assert.Equal(t, 8, mf.Matrix.Points.Year)
	require.Len(t, mf.Days, 29)
	assert.Equal(t, "01.02", mf.Days[0].Formatted)
	assert.Equal(t, "29.02", mf.Days[28].Formatted)
	for _, d := range mf.Days {
		assert.Zero(t, d.Value)
	}
	assert.Equal(t, NewInner(mf.Matrix), mf.Inner)
	assert.Equal(t, NewDestiny(mf.Matrix), mf.Destiny)
}

func TestNewMonthForecast_ExplicitRangeAndDayEnergy(t *testing.T) {
	r := DateRange{Start: date(2024, time.December, 30), End: date(2025, time.January, 3)}
	mf := NewMonthForecast(MonthRequest{
		BirthDay:   7,
		EventMonth: 12,
		Energy:     40,
		Range:      &r,
		DayEnergy:  func(d time.Time) int { return d.Day() + 20 },
	})

	require.Len(t, mf.Days, 4)
	assert.Equal(t, []string{"30.12", "31.12", "01.01", "02.01"}, []string{
		mf.Days[0].Formatted, mf.Days[1].Formatted, mf.Days[2].Formatted, mf.Days[3].Formatted,
	})
	assert.Equal(t, Reduce22(50), mf.Days[0].Value)
	assert.Equal(t, 21, mf.Days[2].Value)
}

func TestNewMonthForecast_EmptyRange(t *testing.T) {
	r := DateRange{Start: date(2024, time.May, 1), End: date(2024, time.May, 1)}
	mf := NewMonthForecast(MonthRequest{BirthDay: 1, EventMonth: 1, Energy: 1, Range: &r})
	assert.Empty(t, mf.Days)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-05-15")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{Day: 15, Month: 5, Year: 1990}, d)

	d, err = ParseDate("29.02.2024")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{Day: 29, Month: 2, Year: 2024}, d)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"", "30.02.2024", "29.02.2023", "1990/05/15", "xx.01.2000", "2000-13-01"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, ErrInvalidDate), "ParseDate(%q)", bad)
	}
}

func TestAge(t *testing.T) {
	birth := CalendarDate{Day: 15, Month: 5, Year: 1990}
	assert.Equal(t, 33, Age(birth, date(2024, time.May, 14)))
	assert.Equal(t, 34, Age(birth, date(2024, time.May, 15)))
	assert.Equal(t, 0, Age(birth, date(1980, time.January, 1)))
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2023, time.December, 1), r.Start)
	assert.Equal(t, date(2024, time.January, 1), r.End)
	assert.Equal(t, 31, r.Days())
}
