package models

import "time"

// DebtStatus is the settlement state of a debt
type DebtStatus string

const (
	DebtPending DebtStatus = "pendente"
	DebtSettled DebtStatus = "quitado"
)

// RawDebt represents a debt row as handed over by the record store
type RawDebt struct {
	ID          FlexString `json:"id"`
	Description string     `json:"descricao"`
	Amount      FlexString `json:"valor"`
	Paid        FlexString `json:"valor_pago"`
	Remaining   FlexString `json:"valorRestante"`
	DueDate     string     `json:"data_vencimento"`
	Status      string     `json:"status"`
	Creditor    string     `json:"credor"`
}

// Debt represents a normalized debt
type Debt struct {
	ID              string
	Description     string
	Amount          float64
	AmountRemaining float64
	DueDate         time.Time
	Status          DebtStatus
	Creditor        string
}

// Overdue reports whether a pending debt is past its due date
func (d Debt) Overdue(now time.Time) bool {
	if d.Status == DebtSettled || d.DueDate.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.DueDate.Before(today)
}
