package analytics

import (
	"time"

	"github.com/Dan9191/cash-insights/internal/models"
)

var testNow = time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func outflow(date time.Time, value float64, category string) models.Transaction {
	return models.Transaction{Date: date, Amount: value, Direction: models.Outflow, Category: category}
}

func inflow(date time.Time, value float64) models.Transaction {
	return models.Transaction{Date: date, Amount: value, Direction: models.Inflow, Category: "Vendas"}
}

// monthlyOutflows books one outflow on the 15th of each month of 2025
func monthlyOutflows(category string, values [12]float64) []models.Transaction {
	var txs []models.Transaction
	for i, v := range values {
		if v == 0 {
			continue
		}
		txs = append(txs, outflow(day(2025, time.Month(i+1), 15), v, category))
	}
	return txs
}

func snapshotOf(balance float64, txs ...models.Transaction) *models.Snapshot {
	return &models.Snapshot{Now: testNow, Transactions: txs, Balance: balance}
}
