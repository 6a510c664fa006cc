package dto

// AcademicKPIs is the headline block of the academic dashboard.
type AcademicKPIs struct {
	GlobalAverage float64 `json:"globalAverage"`
	ApprovalRate  float64 `json:"approvalRate"`
	RiskCount     int     `json:"riskCount"`
	Attendance    float64 `json:"attendance"`
}

// DisciplinePerformance is the mean grade for one subject.
type DisciplinePerformance struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// HistogramBucket is one of the eleven fixed floor(grade) buckets.
type HistogramBucket struct {
	Bucket int `json:"bucket"`
	Count  int `json:"count"`
}

// EvolutionPoint is one month of a metric series.
type EvolutionPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// AcademicDashboardResponse is the academic endpoint contract. Growth maps
// metric kind to a sign-prefixed percentage string; kinds lacking history
// are absent and clients fall back to the configured display value.
type AcademicDashboardResponse struct {
	KPIs                  AcademicKPIs            `json:"kpis"`
	DisciplinePerformance []DisciplinePerformance `json:"disciplinePerformance"`
	Histogram             []HistogramBucket       `json:"histogram"`
	Evolution             []EvolutionPoint        `json:"evolution"`
	Growth                map[string]string       `json:"growth"`
}
