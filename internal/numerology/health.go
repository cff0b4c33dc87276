package numerology

// ChakraRow is one line of the health table.
type ChakraRow struct {
	Name    string `json:"name"`
	Color   string `json:"color"`
	Body    int    `json:"body"`
	Energy  int    `json:"energy"`
	Emotion int    `json:"emotion"`
}

// Totals are the column sums of the health table. The raw sums are kept
// unreduced next to their reduced points.
type Totals struct {
	Body           int `json:"body"`
	Energy         int `json:"energy"`
	Emotion        int `json:"emotion"`
	ReducedBody    int `json:"reduced_body"`
	ReducedEnergy  int `json:"reduced_energy"`
	ReducedEmotion int `json:"reduced_emotion"`
}

// HealthTable is the seven-row chakra table, crown first.
type HealthTable struct {
	Rows   [7]ChakraRow `json:"rows"`
	Totals Totals       `json:"totals"`
}

// NewHealthTable maps matrix fields onto the chakra rows.
func NewHealthTable(m Matrix) HealthTable {
	p := m.Points
	rows := [7]ChakraRow{
		{Name: "crown", Color: "purple", Body: p.Day, Energy: p.Month},
		{Name: "brow", Color: "blue", Body: m.Y[Left], Energy: m.Y[Top]},
		{Name: "throat", Color: "cyan", Body: m.U[Left], Energy: m.U[Top]},
		{Name: "heart", Color: "green", Body: Reduce22(m.U[Left] + p.Center), Energy: Reduce22(m.U[Top] + p.Center)},
		{Name: "solar-plexus", Color: "yellow", Body: p.Center, Energy: p.Center},
		{Name: "sacral", Color: "orange", Body: m.U[Right], Energy: m.U[Bottom]},
		{Name: "root", Color: "red", Body: p.Year, Energy: p.Bottom},
	}

	var t Totals
	for i := range rows {
		rows[i].Emotion = Reduce22(rows[i].Body + rows[i].Energy)
		t.Body += rows[i].Body
		t.Energy += rows[i].Energy
		t.Emotion += rows[i].Emotion
	}
	t.ReducedBody = Reduce22(t.Body)
	t.ReducedEnergy = Reduce22(t.Energy)
	t.ReducedEmotion = Reduce22(t.Emotion)

	return HealthTable{Rows: rows, Totals: t}
}
