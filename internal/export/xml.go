// Package export renders engine results as XML documents.
package export

import (
	"fmt"
	"strconv"

	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/beevik/etree"
)

var ringNames = [8]string{"left", "top-left", "top", "top-right", "right", "bottom-right", "bottom", "bottom-left"}

// ChartXML renders a natal chart
func ChartXML(c numerology.Chart) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("chart")
	root.CreateAttr("date", c.Date.String())

	writeMatrix(root, c.Matrix)

	destiny := root.CreateElement("destiny")
	d := c.Destiny
	for _, kv := range []struct {
		name  string
		value int
	}{
		{"sky", d.Sky}, {"earth", d.Earth}, {"personal", d.Personal},
		{"male-line", d.MaleLine}, {"female-line", d.FemaleLine}, {"social", d.Social},
		{"spiritual", d.Spiritual}, {"planetary", d.Planetary}, {"ancestral-power", d.AncestralPower},
	} {
		setInt(destiny.CreateElement(kv.name), kv.value)
	}
	writeCode(destiny, "male-code", d.MaleCode)
	writeCode(destiny, "female-code", d.FemaleCode)
	writeCode(destiny, "internal-code", d.InternalCode)

	health := root.CreateElement("health")
	for _, r := range c.Health.Rows {
		row := health.CreateElement("chakra")
		row.CreateAttr("name", r.Name)
		row.CreateAttr("color", r.Color)
		row.CreateAttr("body", strconv.Itoa(r.Body))
		row.CreateAttr("energy", strconv.Itoa(r.Energy))
		row.CreateAttr("emotion", strconv.Itoa(r.Emotion))
	}
	t := c.Health.Totals
	totals := health.CreateElement("totals")
	totals.CreateAttr("body", strconv.Itoa(t.Body))
	totals.CreateAttr("energy", strconv.Itoa(t.Energy))
	totals.CreateAttr("emotion", strconv.Itoa(t.Emotion))
	totals.CreateAttr("reduced-body", strconv.Itoa(t.ReducedBody))
	totals.CreateAttr("reduced-energy", strconv.Itoa(t.ReducedEnergy))
	totals.CreateAttr("reduced-emotion", strconv.Itoa(t.ReducedEmotion))

	money := root.CreateElement("money-code")
	money.CreateAttr("code", c.Money.Code)

	perimeter := root.CreateElement("perimeter")
	for i, e := range c.Perimeter {
		edge := perimeter.CreateElement("edge")
		edge.CreateAttr("from", ringNames[i])
		edge.CreateAttr("to", ringNames[(i+1)%len(ringNames)])
		for _, p := range e.Points {
			setInt(edge.CreateElement("point"), p)
		}
	}

	return render(doc)
}

// YearXML renders a personal-year forecast
func YearXML(f numerology.YearForecast) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("year-forecast")
	root.CreateAttr("target-year", strconv.Itoa(f.TargetYear))
	root.CreateAttr("anchor", f.Anchor.Format("2006-01-02"))

	writeMatrix(root, f.Matrix)
	inner := root.CreateElement("inner")
	inner.CreateAttr("a", strconv.Itoa(f.Inner.A))
	inner.CreateAttr("b", strconv.Itoa(f.Inner.B))
	inner.CreateAttr("c", strconv.Itoa(f.Inner.C))

	ring := root.CreateElement("segments")
	for _, s := range f.Segments {
		seg := ring.CreateElement("segment")
		seg.CreateAttr("label", strconv.Itoa(s.Label))
		seg.CreateAttr("start", s.Start.Format("2006-01-02"))
		seg.CreateAttr("end", s.End.Format("2006-01-02"))
		setInt(seg, s.Value)
	}

	return render(doc)
}

func writeMatrix(parent *etree.Element, m numerology.Matrix) {
	el := parent.CreateElement("matrix")
	el.CreateAttr("center", strconv.Itoa(m.Center()))
	layers := []struct {
		name string
		ring numerology.Ring
	}{{"values", m.Values}, {"u", m.U}, {"y", m.Y}}
	for _, l := range layers {
		layer := el.CreateElement(l.name)
		for i, v := range l.ring {
			p := layer.CreateElement("point")
			p.CreateAttr("position", ringNames[i])
			setInt(p, v)
		}
	}
}

func writeCode(parent *etree.Element, name string, code [3]int) {
	el := parent.CreateElement(name)
	el.SetText(fmt.Sprintf("%d-%d-%d", code[0], code[1], code[2]))
}

func setInt(el *etree.Element, v int) {
	el.SetText(strconv.Itoa(v))
}

func render(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render XML: %w", err)
	}
	return out, nil
}
