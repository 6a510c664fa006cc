package dto

// CashFlowEntry is one month of the cash-flow chart.
type CashFlowEntry struct {
	Month   string  `json:"month"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Total   float64 `json:"total"`
}

// FinancialKPIs is the billing KPI block.
type FinancialKPIs struct {
	TotalBilled     float64 `json:"totalBilled"`
	TotalPaid       float64 `json:"totalPaid"`
	TotalOverdue    float64 `json:"totalOverdue"`
	DelinquencyRate float64 `json:"delinquencyRate"`
}

// ExpenseSlice is one category of the expense breakdown.
type ExpenseSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TransactionEntry is a formatted recent transaction. Amount is a
// sign-prefixed localized currency string; Type is income or expense.
type TransactionEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
}

// FinancialDashboardResponse is the financial endpoint contract.
type FinancialDashboardResponse struct {
	FinanceData         []CashFlowEntry    `json:"financeData"`
	KPIs                FinancialKPIs      `json:"kpis"`
	ExpenseDistribution []ExpenseSlice     `json:"expenseDistribution"`
	RecentTransactions  []TransactionEntry `json:"recentTransactions"`
}
