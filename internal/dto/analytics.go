package dto

// MetricBreakdownEntry is a per-unit (and optionally per-class) count.
type MetricBreakdownEntry struct {
	UnitLabel  string `json:"unitLabel"`
	ClassLabel string `json:"classLabel,omitempty"`
	Value      int    `json:"value"`
}

// MetricSeriesResponse is the latest value of a monthly metric plus its
// trailing history, ascending by month.
type MetricSeriesResponse struct {
	Current float64          `json:"current"`
	History []EvolutionPoint `json:"history"`
}

// DropoutPoint is one month of the dropout-rate series against target.
type DropoutPoint struct {
	Month  string  `json:"month"`
	Rate   float64 `json:"rate"`
	Target float64 `json:"target"`
}
