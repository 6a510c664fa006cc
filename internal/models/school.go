package models

// Enrollment statuses used by the headcount queries.
const (
	EnrollmentStatusActive   = "Active"
	EnrollmentStatusEnrolled = "Enrolled"
	EnrollmentStatusDropped  = "Dropped"
)

// SchoolStudentCount is one school with its live enrollment count. Schools
// without students still appear (LEFT JOIN) with a zero count.
type SchoolStudentCount struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	City     string `db:"city"`
	Students int    `db:"students"`
}

// EnrollmentBreakdown is the headcount per (school, class group).
type EnrollmentBreakdown struct {
	SchoolName string `db:"school_name"`
	ClassName  string `db:"class_name"`
	Count      int    `db:"count"`
}

// SiblingCount is the per-school count of enrolled students with siblings.
type SiblingCount struct {
	SchoolName string `db:"school_name"`
	Count      int    `db:"count"`
}
