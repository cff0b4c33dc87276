// Package numerology derives the matrix of destiny and its dependent views from
// a calendar date. Every function is pure: the same input always yields the same
// value and nothing is shared between calls, so callers may compute concurrently.
// The one exception is NewMonthForecast, which reads the clock when neither a
// range nor a reference time is given.
// Callers validate dates before invoking the engine; integer input is never
// rejected here.
package numerology

// Ring positions, clockwise from Left and tilted 45 degrees.
const (
	Left = iota
	TopLeft
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
)

// Ring is an ordered set of eight points indexed by compass position.
type Ring [8]int

// Points are the named base values of a matrix.
type Points struct {
	Day         int `json:"day"`
	Month       int `json:"month"`
	Year        int `json:"year"`
	Bottom      int `json:"bottom"`
	Center      int `json:"center"`
	TopLeft     int `json:"top_left"`
	TopRight    int `json:"top_right"`
	BottomRight int `json:"bottom_right"`
	BottomLeft  int `json:"bottom_left"`
}

// Matrix is the natal ring with its center and the two derived layers.
type Matrix struct {
	Points Points `json:"points"`
	Values Ring   `json:"values"`
	U      Ring   `json:"u"`
	Y      Ring   `json:"y"`
}

// Center returns the center point.
func (m Matrix) Center() int {
	return m.Points.Center
}

// FromPillars derives a matrix from three raw pillars. Each pillar is reduced
// before use, so callers pass the day, month and the year digit sum (or any
// externally chosen third pillar).
func FromPillars(day, month, year int) Matrix {
	p := Points{
		Day:   Reduce22(day),
		Month: Reduce22(month),
		Year:  Reduce22(year),
	}
	p.Bottom = Reduce22(p.Day + p.Month + p.Year)
	p.Center = Reduce22(p.Day + p.Month + p.Year + p.Bottom)
	p.TopLeft = Reduce22(p.Day + p.Month)
	p.TopRight = Reduce22(p.Month + p.Year)
	p.BottomRight = Reduce22(p.Year + p.Bottom)
	p.BottomLeft = Reduce22(p.Bottom + p.Day)

	m := Matrix{
		Points: p,
		Values: Ring{p.Day, p.TopLeft, p.Month, p.TopRight, p.Year, p.BottomRight, p.Bottom, p.BottomLeft},
	}
	for i, v := range m.Values {
		m.U[i] = Reduce22(v + p.Center)
		m.Y[i] = Reduce22(v + m.U[i])
	}
	return m
}

// NewMatrix derives the natal matrix of a birth date.
func NewMatrix(d CalendarDate) Matrix {
	return FromPillars(d.Day, d.Month, DigitSum(d.Year))
}

// Inner holds the three markers on the line between U[Right] and U[Bottom].
type Inner struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// NewInner computes the money/relationship markers of a matrix.
func NewInner(m Matrix) Inner {
	a := Reduce22(m.U[Right] + m.U[Bottom])
	return Inner{
		A: a,
		B: Reduce22(m.U[Right] + a),
		C: Reduce22(m.U[Bottom] + a),
	}
}

// Channels are the money and relationship channels of a forecast matrix.
type Channels struct {
	Money        [3]int `json:"money"`
	Relationship [3]int `json:"relationship"`
}

// NewChannels lays out the channels from a matrix and its inner markers.
func NewChannels(m Matrix, in Inner) Channels {
	center, br := m.Points.Center, m.Points.BottomRight
	return Channels{
		Money:        [3]int{in.B, in.A, in.C},
		Relationship: [3]int{center, Reduce22(center + br), br},
	}
}
