package numerology

// Edge holds the seven points placed along the side between two ring values.
// Points[3] is the midpoint.
type Edge struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Points [7]int `json:"points"`
}

// NewPerimeter computes the labels for all eight sides of the outer ring,
// side i running from values[i] to values[i+1].
func NewPerimeter(values Ring) [8]Edge {
	var edges [8]Edge
	for i := range values {
		v1, v2 := values[i], values[(i+1)%len(values)]
		p4 := Reduce22(v1 + v2)
		p2 := Reduce22(p4 + v1)
		p1 := Reduce22(p2 + v1)
		p3 := Reduce22(p2 + p4)
		p6 := Reduce22(p4 + v2)
		p5 := Reduce22(p4 + p6)
		p7 := Reduce22(p6 + v2)
		edges[i] = Edge{From: v1, To: v2, Points: [7]int{p1, p2, p3, p4, p5, p6, p7}}
	}
	return edges
}
