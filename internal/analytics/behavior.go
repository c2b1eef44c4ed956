package analytics

import (
	"math"

	"github.com/Dan9191/cash-insights/internal/models"
)

// NoCategory is reported as dominant category when there are no patterns
const NoCategory = "N/A"

const businessHours = "Comercial"

var weekdayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// ProfileBehavior derives the busiest weekday, the dominant category and the
// current-month efficiency. Seasonality is never detected here.
func ProfileBehavior(s *models.Snapshot, patterns []models.CategoryPattern) models.BehaviorProfile {
	var byWeekday [7]float64
	add := func(t models.Transaction) {
		if !t.Date.IsZero() {
			byWeekday[t.Date.Weekday()] += t.Amount
		}
	}
	for _, t := range s.Transactions {
		if t.Direction == models.Outflow {
			add(t)
		}
	}
	for _, e := range s.Expenses {
		add(e)
	}

	busiest := 0
	for day := 1; day < len(byWeekday); day++ {
		if byWeekday[day] > byWeekday[busiest] {
			busiest = day
		}
	}

	dominant := NoCategory
	if len(patterns) > 0 {
		dominant = patterns[0].Category
	}

	inflow, outflow := currentMonthFlows(s)
	efficiency := clamp(50+((inflow-outflow)/math.Max(1, inflow))*50, 0, 100)
	balance := s.Balance

	return models.BehaviorProfile{
		BusiestWeekday:   weekdayNames[busiest],
		MostActivePeriod: businessHours,
		DominantCategory: dominant,
		SeasonalityFlag:  false,
		EfficiencyPct:    int(math.Round(efficiency)),
		CurrentBalance:   &balance,
	}
}

// currentMonthFlows sums transactions dated in the same month and year as now
func currentMonthFlows(s *models.Snapshot) (inflow, outflow float64) {
	var current []models.Transaction
	for _, t := range s.Transactions {
		if t.Date.Year() == s.Now.Year() && t.Date.Month() == s.Now.Month() {
			current = append(current, t)
		}
	}
	return flowTotals(current)
}
