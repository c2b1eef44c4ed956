package analytics

import (
	"math"

	"github.com/Dan9191/cash-insights/internal/models"
)

// ScoreHealth combines the inflow surplus and the share of categories that
// are not rising into a 0-100 score anchored at 50.
func ScoreHealth(s *models.Snapshot, patterns []models.CategoryPattern) int {
	inflow, outflow := flowTotals(s.Transactions)

	score := 50.0
	if inflow > outflow {
		score += math.Min(30, (inflow-outflow)/inflow*100)
	}

	favorable := 0
	for _, p := range patterns {
		if p.Trend != models.TrendRising {
			favorable++
		}
	}
	score += float64(favorable) / math.Max(1, float64(len(patterns))) * 20

	return int(math.Round(clamp(score, 0, 100)))
}
