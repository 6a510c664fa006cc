package models

// ClassEnrollment counts active students per class group.
type ClassEnrollment struct {
	ClassName string `db:"class_name"`
	Count     int    `db:"count"`
}

// CostHistoryPoint is one month of operational expense totals by category.
type CostHistoryPoint struct {
	Month       string  `db:"month"`
	Energy      float64 `db:"energy"`
	Maintenance float64 `db:"maintenance"`
	Supplies    float64 `db:"supplies"`
}

// TicketWeekdayStat buckets support tickets by opening weekday.
type TicketWeekdayStat struct {
	Day       string `db:"day"`
	DayOfWeek int    `db:"day_of_week"`
	Open      int    `db:"open"`
	Resolved  int    `db:"resolved"`
}
