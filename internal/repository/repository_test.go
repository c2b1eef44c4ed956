package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var transactionColumns = []string{"id", "data", "valor", "tipo", "categoria", "descricao"}

func TestListTransactions(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cash.transacoes")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("1", "2025-11-03", "1500.00", "entrada", "Vendas", "Nota 12").
			AddRow("2", "2025-11-04", "320.5", "saida", nil, nil))

	got, err := repo.ListTransactions(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []models.RawTransaction{
		{ID: "1", Date: "2025-11-03", Amount: "1500.00", Type: "entrada", Category: "Vendas", Description: "Nota 12"},
		{ID: "2", Date: "2025-11-04", Amount: "320.5", Type: "saida"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactionsOwnerFilter(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("($1 = '' OR user_id::text = $1)")).
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	got, err := repo.ListTransactions(context.Background(), "42")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpenses(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`(?s)'saida', categoria, descricao.*FROM cash\.gastos_obras`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("7", "2025-10-01", "900", "saida", "Obras", "Cimento"))

	got, err := repo.ListExpenses(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "saida", got[0].Type)
	assert.Equal(t, "Obras", got[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDebts(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cash.dividas")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"id", "descricao", "valor", "valor_pago", "data_vencimento", "status", "credor"}).
			AddRow("3", "Fornecedor", "5000", nil, "2025-09-10", "pendente", "Aço Sul").
			AddRow("4", "Leasing", "1200", "1200", nil, "pago", nil))

	got, err := repo.ListDebts(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []models.RawDebt{
		{ID: "3", Description: "Fornecedor", Amount: "5000", DueDate: "2025-09-10", Status: "pendente", Creditor: "Aço Sul"},
		{ID: "4", Description: "Leasing", Amount: "1200", Paid: "1200", Status: "pago"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT nome")).
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows([]string{"nome"}).AddRow("Obras").AddRow("Vendas"))

	got, err := repo.ListCategories(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, []string{"Obras", "Vendas"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		table string
		call  func(*Repository) error
		msg   string
	}{
		{name: "transactions", table: "cash.transacoes", call: func(r *Repository) error { _, err := r.ListTransactions(ctx, ""); return err }, msg: "failed to query transactions"},
		{name: "expenses", table: "cash.gastos_obras", call: func(r *Repository) error { _, err := r.ListExpenses(ctx, ""); return err }, msg: "failed to query transactions"},
		{name: "debts", table: "cash.dividas", call: func(r *Repository) error { _, err := r.ListDebts(ctx, ""); return err }, msg: "failed to query debts"},
		{name: "categories", table: "cash.categorias", call: func(r *Repository) error { _, err := r.ListCategories(ctx, ""); return err }, msg: "failed to query categories"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery(regexp.QuoteMeta(tt.table)).WithArgs("").WillReturnError(boom)

			err := tt.call(repo)

			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.ErrorContains(t, err, tt.msg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("row error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("cash.categorias")).
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"nome"}).AddRow("Obras").RowError(0, boom))

		_, err := repo.ListCategories(ctx, "")

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "failed to iterate categories")
	})
}
