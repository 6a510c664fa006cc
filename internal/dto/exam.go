package dto

// ExamAverages holds the per-area mean scores.
type ExamAverages struct {
	Math       int `json:"math"`
	Languages  int `json:"languages"`
	Humanities int `json:"humanities"`
	Science    int `json:"science"`
	Essay      int `json:"essay"`
}

// ExamExtremes holds the headline maximum scores.
type ExamExtremes struct {
	MaxMath  int `json:"maxMath"`
	MaxEssay int `json:"maxEssay"`
}

// ExamArea is one chart row of the area comparison.
type ExamArea struct {
	Area    string `json:"area"`
	Code    string `json:"code"`
	Average int    `json:"average"`
}

// ExamStatisticsResponse is the exam statistics endpoint contract.
type ExamStatisticsResponse struct {
	Total    int          `json:"total"`
	Averages ExamAverages `json:"averages"`
	Extremes ExamExtremes `json:"extremes"`
	Areas    []ExamArea   `json:"areas"`
}
