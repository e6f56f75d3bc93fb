package change

import "github.com/iwvelando/marketchart/pkg/mathutil"

// Stats summarizes the finite values of a series in range.
type Stats struct {
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Average       float64 `json:"average"`
	HasData       bool    `json:"hasData"`
}

// Summarize computes Stats over the finite values. Change and ChangePercent
// compare the last value with the one before it.
func Summarize(values []float64) Stats {
	finite := mathutil.FiniteValues(values)
	if len(finite) == 0 {
		return Stats{}
	}

	st := Stats{Current: finite[len(finite)-1], HasData: true}
	if len(finite) >= 2 {
		prev := finite[len(finite)-2]
		st.Change = Delta(st.Current, prev)
		st.ChangePercent = Rate(st.Current, prev)
	}

	st.Low, st.High, _ = mathutil.MinMax(finite)
	// Summing v/n keeps the mean finite for values near the float64 limit.
	n := float64(len(finite))
	for _, v := range finite {
		st.Average += v / n
	}
	return st
}
