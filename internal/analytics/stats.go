package analytics

import (
	"math"

	"github.com/Dan9191/cash-insights/internal/models"
)

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// stdDev returns the population standard deviation
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var squares float64
	for _, v := range values {
		squares += (v - m) * (v - m)
	}
	return math.Sqrt(squares / float64(len(values)))
}

func positive(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// flowTotals sums inflows and outflows of the given transactions
func flowTotals(transactions []models.Transaction) (inflow, outflow float64) {
	for _, t := range transactions {
		switch t.Direction {
		case models.Inflow:
			inflow += t.Amount
		case models.Outflow:
			outflow += t.Amount
		}
	}
	return inflow, outflow
}
