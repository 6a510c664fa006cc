package dto

// OverviewAcademic holds the cross-domain academic KPIs.
type OverviewAcademic struct {
	Attendance float64 `json:"attendance"`
	Average    float64 `json:"average"`
}

// OverviewFinancial holds the simplified margin KPI.
type OverviewFinancial struct {
	Margin float64 `json:"margin"`
}

// OverviewCustomers holds the enrollment KPI.
type OverviewCustomers struct {
	ActiveStudents int `json:"activeStudents"`
}

// OverviewOperational holds the open-ticket KPI.
type OverviewOperational struct {
	OpenTickets int `json:"openTickets"`
}

// OverviewResponse is the overview endpoint contract. Each block is
// computed from an independent, NULL-safe query.
type OverviewResponse struct {
	Academic    OverviewAcademic    `json:"academic"`
	Financial   OverviewFinancial   `json:"financial"`
	Customers   OverviewCustomers   `json:"customers"`
	Operational OverviewOperational `json:"operational"`
}
