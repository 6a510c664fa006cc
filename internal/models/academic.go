package models

// SubjectAverage is one row of the per-subject grade aggregate.
type SubjectAverage struct {
	Subject string  `db:"subject"`
	Average float64 `db:"average"`
}

// AcademicGlobals holds the store-wide grade and attendance means. The SQL
// COALESCEs empty aggregates to zero so the fields scan cleanly.
type AcademicGlobals struct {
	AverageGrade      float64 `db:"average_grade"`
	AverageAttendance float64 `db:"average_attendance"`
}

// ApprovalCounts pairs the total performance-record count with the number
// of records meeting both approval thresholds.
type ApprovalCounts struct {
	Total    int `db:"total"`
	Approved int `db:"approved"`
}

// HistogramBin is a sparse floor(grade) bucket as returned by the store.
// Densification into the fixed 0..10 range happens in the service.
type HistogramBin struct {
	Bucket int `db:"bucket"`
	Count  int `db:"count"`
}
