package dto

// IndicatorSource distinguishes measured values from placeholder constants
// so consumers and tests can tell real data from synthetic data.
type IndicatorSource string

const (
	SourceMeasured    IndicatorSource = "measured"
	SourcePlaceholder IndicatorSource = "placeholder"
)

// Indicator is a numeric operational KPI with provenance.
type Indicator struct {
	Value  float64         `json:"value"`
	Unit   string          `json:"unit"`
	Source IndicatorSource `json:"source"`
}

// TextIndicator is a non-numeric KPI with provenance.
type TextIndicator struct {
	Value  string          `json:"value"`
	Source IndicatorSource `json:"source"`
}

// OperationalKPIs is the operational dashboard KPI block.
type OperationalKPIs struct {
	Occupancy          Indicator     `json:"occupancy"`
	SecretariatSLA     Indicator     `json:"secretariatSla"`
	OpenTickets        Indicator     `json:"openTickets"`
	TeacherAbsenteeism Indicator     `json:"teacherAbsenteeism"`
	ITUptime           Indicator     `json:"itUptime"`
	PrintingCost       Indicator     `json:"printingCost"`
	CafeteriaWaste     Indicator     `json:"cafeteriaWaste"`
	SecurityStatus     TextIndicator `json:"securityStatus"`
}

// CostHistoryEntry is one month of operational expense totals.
type CostHistoryEntry struct {
	Month       string  `json:"month"`
	Energy      float64 `json:"energy"`
	Maintenance float64 `json:"maintenance"`
	Supplies    float64 `json:"supplies"`
}

// TicketPerformanceEntry is one weekday of the ticket throughput chart.
type TicketPerformanceEntry struct {
	Day      string `json:"day"`
	Open     int    `json:"open"`
	Resolved int    `json:"resolved"`
}

// OperationalDashboardResponse is the operational endpoint contract.
type OperationalDashboardResponse struct {
	KPIs              OperationalKPIs          `json:"kpis"`
	CostHistory       []CostHistoryEntry       `json:"costHistory"`
	TicketPerformance []TicketPerformanceEntry `json:"ticketPerformance"`
}
