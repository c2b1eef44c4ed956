package service

//go:generate mockgen -source=interfaces.go -destination=mocks.go -package=service

import (
	"context"

	"github.com/Dan9191/cash-insights/internal/models"
)

// RecordStore is the read side of the financial record store
type RecordStore interface {
	ListTransactions(ctx context.Context, ownerID string) ([]models.RawTransaction, error)
	ListExpenses(ctx context.Context, ownerID string) ([]models.RawTransaction, error)
	ListDebts(ctx context.Context, ownerID string) ([]models.RawDebt, error)
	ListCategories(ctx context.Context, ownerID string) ([]string, error)
}

// Notifier delivers insight digests
type Notifier interface {
	SendInsightDigest(to string, digest models.Digest) error
}

// RateSource provides the benchmark interest rate in percent
type RateSource interface {
	KeyRate(ctx context.Context) (float64, error)
}
