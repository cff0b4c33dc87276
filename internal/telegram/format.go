package telegram

import (
	"fmt"
	"strings"

	"github.com/Dan9191/matrix-service/internal/numerology"
)

// FormatChart renders the chart summary sent in chat
func FormatChart(c numerology.Chart) string {
	p := c.Matrix.Points
	d := c.Destiny
	var b strings.Builder
	fmt.Fprintf(&b, "Matrix for %02d.%02d.%04d\n\n", c.Date.Day, c.Date.Month, c.Date.Year)
	fmt.Fprintf(&b, "A %d · B %d · C %d · D %d\n", p.Day, p.Month, p.Year, p.Bottom)
	fmt.Fprintf(&b, "Center: %d\n\n", p.Center)
	fmt.Fprintf(&b, "Personal: %d\nSocial: %d\nSpiritual: %d\nPlanetary: %d\n", d.Personal, d.Social, d.Spiritual, d.Planetary)
	fmt.Fprintf(&b, "\nMoney code: %s", c.Money.Code)
	return b.String()
}

// FormatYear renders the year ring one segment per line
func FormatYear(f numerology.YearForecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Personal year %d–%d\n\n", f.TargetYear-1, f.TargetYear)
	for _, s := range f.Segments {
		fmt.Fprintf(&b, "%s – %s: %d\n", s.Start.Format("02.01"), s.End.Format("02.01"), s.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}
