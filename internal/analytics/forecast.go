package analytics

import "github.com/Dan9191/cash-insights/internal/models"

const (
	forecastHorizon = 6
	// monthlyGrowth is the optimistic step applied per forecast month.
	monthlyGrowth = 0.02
)

var monthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ForecastCashFlow projects the next six months from flat monthly averages
// (window totals divided by 12, whatever the real data span). The cumulative
// balance starts from zero, not from the current cash balance.
func ForecastCashFlow(s *models.Snapshot) []models.CashFlowPoint {
	inflow, outflow := flowTotals(s.Transactions)
	avgInflow := inflow / 12
	avgOutflow := outflow / 12

	current := int(s.Now.Month()) - 1
	points := make([]models.CashFlowPoint, 0, forecastHorizon)
	var cumulative float64
	for i := 0; i < forecastHorizon; i++ {
		factor := 1 + float64(i)*monthlyGrowth
		in := avgInflow * factor
		out := avgOutflow * factor
		cumulative += in - out
		points = append(points, models.CashFlowPoint{
			MonthLabel:        monthLabels[(current+i+1)%12],
			ForecastInflow:    in,
			ForecastOutflow:   out,
			CumulativeBalance: cumulative,
			ConfidencePct:     clamp(95-float64(i)*8, 50, 95),
		})
	}
	return points
}
