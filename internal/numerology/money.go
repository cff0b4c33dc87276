package numerology

import "strconv"

// MoneyCode is the five-digit code built from single-digit reductions.
type MoneyCode struct {
	Corners [5]int `json:"corners"`
	Code    string `json:"code"`
}

// NewMoneyCode reduces the raw day, month and year independently of the matrix.
func NewMoneyCode(day, month, year int) MoneyCode {
	var c [5]int
	c[0] = Reduce9(day)
	c[1] = Reduce9(month)
	c[2] = Reduce9(year)
	c[3] = Reduce9(c[0] + c[1] + c[2])
	c[4] = Reduce9(c[0] + c[1] + c[2] + c[3])

	code := make([]byte, 0, len(c))
	for _, v := range c {
		code = strconv.AppendInt(code, int64(v), 10)
	}
	return MoneyCode{Corners: c, Code: string(code)}
}
