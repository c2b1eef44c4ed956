package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/cash-insights/internal/models"
)

// Repository provides read access to the financial records of an owner.
// Values are read as text and left for the analytics normalizer to coerce.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// An empty owner matches every row
const ownerFilter = `($1 = '' OR user_id::text = $1)`

// ListTransactions returns every transaction of the owner, oldest first
func (r *Repository) ListTransactions(ctx context.Context, ownerID string) ([]models.RawTransaction, error) {
	query := `
		SELECT id::text, data::text, valor::text, tipo, categoria, descricao
		FROM cash.transacoes
		WHERE ` + ownerFilter + `
		ORDER BY data, id`
	return r.listTransactions(ctx, query, ownerID)
}

// ListExpenses returns every standalone expense of the owner, oldest first
func (r *Repository) ListExpenses(ctx context.Context, ownerID string) ([]models.RawTransaction, error) {
	query := `
		SELECT id::text, data::text, valor::text, 'saida', categoria, descricao
		FROM cash.gastos_obras
		WHERE ` + ownerFilter + `
		ORDER BY data, id`
	return r.listTransactions(ctx, query, ownerID)
}

func (r *Repository) listTransactions(ctx context.Context, query, ownerID string) ([]models.RawTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.RawTransaction
	for rows.Next() {
		var id, date, amount, kind, category, description sql.NullString
		if err := rows.Scan(&id, &date, &amount, &kind, &category, &description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, models.RawTransaction{
			ID:          models.FlexString(id.String),
			Date:        date.String,
			Amount:      models.FlexString(amount.String),
			Type:        kind.String,
			Category:    category.String,
			Description: description.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// ListDebts returns every debt of the owner, settled ones included
func (r *Repository) ListDebts(ctx context.Context, ownerID string) ([]models.RawDebt, error) {
	query := `
		SELECT id::text, descricao, valor::text, valor_pago::text, data_vencimento::text, status, credor
		FROM cash.dividas
		WHERE ` + ownerFilter + `
		ORDER BY data_vencimento NULLS LAST, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []models.RawDebt
	for rows.Next() {
		var id, description, amount, paid, due, status, creditor sql.NullString
		if err := rows.Scan(&id, &description, &amount, &paid, &due, &status, &creditor); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, models.RawDebt{
			ID:          models.FlexString(id.String),
			Description: description.String,
			Amount:      models.FlexString(amount.String),
			Paid:        models.FlexString(paid.String),
			DueDate:     due.String,
			Status:      status.String,
			Creditor:    creditor.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// ListCategories returns the names of the owner's registered categories
func (r *Repository) ListCategories(ctx context.Context, ownerID string) ([]string, error) {
	query := `
		SELECT nome
		FROM cash.categorias
		WHERE ` + ownerFilter + `
		ORDER BY nome`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
