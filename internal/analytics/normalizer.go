package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultCategory replaces missing or unregistered categories
const DefaultCategory = "Outros"

// DefaultHistoryMonths is the length of the analysis window
const DefaultHistoryMonths = 12

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07",
}

// InputError describes a field that could not be parsed and was coerced
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	return "unparseable " + e.Field + ": " + e.Value
}

// Normalizer converts raw store records into typed records. It never fails:
// unparseable numbers become zero and are counted in Coerced.
type Normalizer struct {
	registered       map[string]struct{}
	keepUnregistered bool
	Coerced          int
}

// NormalizerOption configures a Normalizer
type NormalizerOption func(*Normalizer)

// KeepUnregistered keeps every non-empty category name. Used for posted
// snapshots, which carry no category registry.
func KeepUnregistered() NormalizerOption {
	return func(n *Normalizer) {
		n.keepUnregistered = true
	}
}

// NewNormalizer builds a normalizer for the tenant's registered categories.
// Names outside the registry become DefaultCategory, so an empty registry
// maps every category to it.
func NewNormalizer(categories []string, opts ...NormalizerOption) *Normalizer {
	registered := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			registered[c] = struct{}{}
		}
	}
	n := &Normalizer{registered: registered}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Amount parses a money field, returning zero when it cannot be parsed
func (n *Normalizer) Amount(field string, raw models.FlexString) float64 {
	v, err := parseAmount(field, raw)
	if err != nil {
		n.Coerced++
	}
	return v
}

func parseAmount(field string, raw models.FlexString) (float64, *InputError) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &InputError{Field: field, Value: s}
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &InputError{Field: field, Value: s}
	}
	return math.Abs(f), nil
}

// Category resolves a category name against the registered set
func (n *Normalizer) Category(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCategory
	}
	if n.keepUnregistered {
		return name
	}
	if _, ok := n.registered[name]; !ok {
		return DefaultCategory
	}
	return name
}

// Transaction normalizes one transaction row
func (n *Normalizer) Transaction(raw models.RawTransaction) models.Transaction {
	return models.Transaction{
		ID:          strings.TrimSpace(string(raw.ID)),
		Date:        parseDate(raw.Date),
		Amount:      n.Amount("valor", raw.Amount),
		Direction:   parseDirection(raw.Type),
		Category:    n.Category(raw.Category),
		Description: strings.TrimSpace(raw.Description),
	}
}

// Expense normalizes a standalone expense row; its direction is always outflow
func (n *Normalizer) Expense(raw models.RawTransaction) models.Transaction {
	t := n.Transaction(raw)
	t.Direction = models.Outflow
	return t
}

// Debt normalizes one debt row
func (n *Normalizer) Debt(raw models.RawDebt) models.Debt {
	amount := n.Amount("valor", raw.Amount)
	remaining := n.Amount("valorRestante", raw.Remaining)
	switch {
	case remaining > 0:
	case strings.TrimSpace(string(raw.Paid)) != "":
		remaining = math.Max(0, amount-n.Amount("valor_pago", raw.Paid))
	default:
		remaining = amount
	}
	return models.Debt{
		ID:              strings.TrimSpace(string(raw.ID)),
		Description:     strings.TrimSpace(raw.Description),
		Amount:          amount,
		AmountRemaining: remaining,
		DueDate:         parseDate(raw.DueDate),
		Status:          parseDebtStatus(raw.Status),
		Creditor:        strings.TrimSpace(raw.Creditor),
	}
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseDirection(s string) models.Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrada", "inflow", "income":
		return models.Inflow
	case "saida", "saída", "outflow", "expense":
		return models.Outflow
	default:
		return ""
	}
}

func parseDebtStatus(s string) models.DebtStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pago", "quitado", "settled", "paid":
		return models.DebtSettled
	default:
		return models.DebtPending
	}
}

// SnapshotOptions tunes snapshot construction
type SnapshotOptions struct {
	HistoryMonths int
}

// NewSnapshot normalizes the full record history into one analysis input.
// The balance covers every transaction; patterns, forecast and scores only
// see the trailing window.
func NewSnapshot(now time.Time, transactions, expenses []models.RawTransaction, debts []models.RawDebt, categories []string, opts SnapshotOptions) *models.Snapshot {
	months := opts.HistoryMonths
	if months <= 0 {
		months = DefaultHistoryMonths
	}
	windowStart := now.AddDate(0, -months, 0)
	inWindow := func(t models.Transaction) bool {
		return !t.Date.IsZero() && !t.Date.Before(windowStart)
	}

	n := NewNormalizer(categories)
	snapshot := &models.Snapshot{
		Now:          now,
		Transactions: make([]models.Transaction, 0, len(transactions)),
		Expenses:     make([]models.Transaction, 0, len(expenses)),
		Debts:        make([]models.Debt, 0, len(debts)),
		Categories:   append([]string(nil), categories...),
	}

	for _, raw := range transactions {
		t := n.Transaction(raw)
		switch t.Direction {
		case models.Inflow:
			snapshot.Balance += t.Amount
		case models.Outflow:
			snapshot.Balance -= t.Amount
		}
		if inWindow(t) {
			snapshot.Transactions = append(snapshot.Transactions, t)
		}
	}
	for _, raw := range expenses {
		if e := n.Expense(raw); inWindow(e) {
			snapshot.Expenses = append(snapshot.Expenses, e)
		}
	}
	for _, raw := range debts {
		d := n.Debt(raw)
		if d.Status == models.DebtSettled {
			continue
		}
		snapshot.TotalDebt += d.AmountRemaining
		snapshot.Debts = append(snapshot.Debts, d)
	}

	snapshot.Coerced = n.Coerced
	return snapshot
}

// SnapshotFromRequest builds a snapshot from a served analysis request. The
// caller already chose the window and computed balance and debt totals.
func SnapshotFromRequest(now time.Time, req *models.AnalyzeRequest) *models.Snapshot {
	n := NewNormalizer(nil, KeepUnregistered())
	snapshot := &models.Snapshot{
		Now:          now,
		Transactions: make([]models.Transaction, 0, len(req.Transactions)),
		Expenses:     make([]models.Transaction, 0, len(req.Expenses)),
		Debts:        make([]models.Debt, 0, len(req.Debts)),
		Balance:      req.Balance,
		TotalDebt:    req.TotalDebt,
	}
	for _, raw := range req.Transactions {
		snapshot.Transactions = append(snapshot.Transactions, n.Transaction(raw))
	}
	for _, raw := range req.Expenses {
		snapshot.Expenses = append(snapshot.Expenses, n.Expense(raw))
	}
	for _, raw := range req.Debts {
		if d := n.Debt(raw); d.Status != models.DebtSettled {
			snapshot.Debts = append(snapshot.Debts, d)
		}
	}
	snapshot.Coerced = n.Coerced
	return snapshot
}
