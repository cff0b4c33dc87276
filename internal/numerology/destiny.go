package numerology

// Destiny holds the composite sums read from the natal square and diagonals.
type Destiny struct {
	Sky        int `json:"sky"`
	Earth      int `json:"earth"`
	Personal   int `json:"personal"`
	MaleLine   int `json:"male_line"`
	FemaleLine int `json:"female_line"`
	Social     int `json:"social"`
	Spiritual  int `json:"spiritual"`
	Planetary  int `json:"planetary"`

	AncestralPower int    `json:"ancestral_power"`
	MaleCode       [3]int `json:"male_code"`
	FemaleCode     [3]int `json:"female_code"`
	InternalCode   [3]int `json:"internal_code"`
}

// NewDestiny computes the aggregates. Only the base points and center are read;
// the U and Y layers never contribute.
func NewDestiny(m Matrix) Destiny {
	p := m.Points
	d := Destiny{
		Sky:        Reduce22(p.Month + p.Bottom),
		Earth:      Reduce22(p.Day + p.Year),
		MaleLine:   Reduce22(p.TopLeft + p.BottomRight),
		FemaleLine: Reduce22(p.TopRight + p.BottomLeft),
	}
	d.Personal = Reduce22(d.Sky + d.Earth)
	d.Social = Reduce22(d.MaleLine + d.FemaleLine)
	d.Spiritual = Reduce22(d.Personal + d.Social)
	d.Planetary = Reduce22(d.Social + d.Spiritual)

	d.AncestralPower = Reduce22(p.TopLeft + p.TopRight + p.BottomRight + p.BottomLeft)
	d.MaleCode = [3]int{p.TopLeft, p.BottomRight, d.MaleLine}
	d.FemaleCode = [3]int{p.TopRight, p.BottomLeft, d.FemaleLine}
	d.InternalCode = [3]int{p.Center, d.AncestralPower, Reduce22(p.Center + d.AncestralPower)}
	return d
}
