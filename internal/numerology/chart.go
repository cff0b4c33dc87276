package numerology

// Chart bundles every natal view of one birth date.
type Chart struct {
	Date      CalendarDate `json:"date"`
	Matrix    Matrix       `json:"matrix"`
	Destiny   Destiny      `json:"destiny"`
	Health    HealthTable  `json:"health"`
	Money     MoneyCode    `json:"money"`
	Perimeter [8]Edge      `json:"perimeter"`
}

// NewChart computes the full natal chart. d must be a valid date.
func NewChart(d CalendarDate) Chart {
	m := NewMatrix(d)
	return Chart{
		Date:      d,
		Matrix:    m,
		Destiny:   NewDestiny(m),
		Health:    NewHealthTable(m),
		Money:     NewMoneyCode(d.Day, d.Month, d.Year),
		Perimeter: NewPerimeter(m.Values),
	}
}
