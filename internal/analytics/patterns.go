package analytics

import (
	"sort"

	"github.com/Dan9191/cash-insights/internal/models"
)

const (
	// trendBand is the variation, in percent, beyond which a category is
	// classified as rising or falling.
	trendBand = 10.0
	// forecastUplift is applied to the recent mean to project next month.
	forecastUplift = 1.05
)

// AnalyzePatterns groups outflows and standalone expenses by category into
// month-of-year slots and derives per-category statistics. Categories without
// activity are dropped; the result is sorted by monthly average, largest first.
func AnalyzePatterns(s *models.Snapshot) []models.CategoryPattern {
	slots := make(map[string]*[12]float64)
	var order []string
	add := func(t models.Transaction) {
		if t.Date.IsZero() {
			return
		}
		months, ok := slots[t.Category]
		if !ok {
			months = new([12]float64)
			slots[t.Category] = months
			order = append(order, t.Category)
		}
		months[int(t.Date.Month())-1] += t.Amount
	}
	for _, t := range s.Transactions {
		if t.Direction == models.Outflow {
			add(t)
		}
	}
	for _, e := range s.Expenses {
		add(e)
	}

	patterns := make([]models.CategoryPattern, 0, len(order))
	for _, category := range order {
		if p, ok := categoryPattern(category, slots[category]); ok {
			patterns = append(patterns, p)
		}
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].MonthlyAverage > patterns[j].MonthlyAverage
	})
	return patterns
}

func categoryPattern(category string, months *[12]float64) (models.CategoryPattern, bool) {
	active := positive(months[:])
	if len(active) == 0 {
		return models.CategoryPattern{}, false
	}
	average := mean(active)
	recent := mean(positive(months[9:12]))
	prior := mean(positive(months[6:9]))

	var variation float64
	if prior > 0 {
		variation = (recent - prior) / prior * 100
	}

	forecast := average
	if recent > 0 {
		forecast = recent * forecastUplift
	}

	deviation := stdDev(active)
	return models.CategoryPattern{
		Category:          category,
		MonthlyAverage:    average,
		Trend:             classifyTrend(variation),
		VariationPct:      variation,
		NextMonthForecast: forecast,
		ConfidencePct:     clamp(100-(deviation/average)*50, 50, 95),
		StdDev:            deviation,
	}, true
}

func classifyTrend(variation float64) models.Trend {
	switch {
	case variation > trendBand:
		return models.TrendRising
	case variation < -trendBand:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}
