package models

import "time"

// Snapshot is the full input of one analysis run
type Snapshot struct {
	Now          time.Time
	Transactions []Transaction // analysis window only
	Expenses     []Transaction // standalone expense records, always outflows
	Balance      float64       // over the full history
	TotalDebt    float64       // remaining amount of non-settled debts
	Debts        []Debt
	Categories   []string // registered category names
	Coerced      int      // fields recovered by zero-coercion
}

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Transactions []RawTransaction `json:"transacoes"`
	Expenses     []RawTransaction `json:"gastos_obras"`
	Balance      float64          `json:"saldo_atual"`
	TotalDebt    float64          `json:"total_dividas"`
	Debts        []RawDebt        `json:"dividas"`
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
