package models

// ExamAggregate is the single-row summary over the seeded exam results
// table. Averages come back as integers, matching the dashboard display.
type ExamAggregate struct {
	Total         int `db:"total"`
	AvgMath       int `db:"avg_math"`
	AvgLanguages  int `db:"avg_languages"`
	AvgHumanities int `db:"avg_humanities"`
	AvgScience    int `db:"avg_science"`
	AvgEssay      int `db:"avg_essay"`
	MaxMath       int `db:"max_math"`
	MaxEssay      int `db:"max_essay"`
}
