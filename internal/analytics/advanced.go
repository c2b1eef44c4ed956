package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Dan9191/cash-insights/internal/models"
)

const (
	iconCross    = "❌"
	iconCheck    = "✅"
	iconDown     = "📉"
	iconRocket   = "🚀"
	iconCalendar = "📅"

	minAnomalySample     = 10
	anomalyZ             = 2.0
	minSeasonalitySample = 20
	seasonalPeak         = 1.3
	fastGrowth           = 20.0
)

// advancedInsightRules run after the base rules, so the cap never drops a
// base insight in favor of one of these.
var advancedInsightRules = []insightRule{
	overdueDebtInsight,
	debtRatioInsight,
	savingsRateInsight,
	anomalyInsight,
	growthForecastInsight,
	seasonalityInsight,
}

var advancedRecommendationRules = []recommendationRule{
	debtRecommendation,
	reserveRecommendation,
}

func overdueDebtInsight(c *ruleContext) []models.Insight {
	var count int
	var overdue float64
	for _, d := range c.snapshot.Debts {
		if d.Overdue(c.snapshot.Now) {
			count++
			overdue += d.AmountRemaining
		}
	}
	if count == 0 {
		return nil
	}
	return []models.Insight{{
		Kind:        models.KindAlert,
		Title:       fmt.Sprintf("%d dívida(s) vencida(s)", count),
		Description: sprintf("R$ %.2f em atraso. Priorize esses pagamentos.", overdue),
		Impact:      models.ImpactHigh,
		Amount:      amount(overdue),
		Icon:        iconCross,
		Color:       colorRed,
	}}
}

func debtRatioInsight(c *ruleContext) []models.Insight {
	s := c.snapshot
	if s.TotalDebt <= 0 || s.Balance <= 0 {
		return nil
	}
	ratio := s.TotalDebt / s.Balance * 100
	switch {
	case ratio > 200:
		return []models.Insight{{
			Kind:        models.KindAlert,
			Title:       "Dívidas superam o saldo de caixa",
			Description: sprintf("As dívidas representam %.0f%% do saldo de caixa. Risco financeiro alto.", ratio),
			Impact:      models.ImpactHigh,
			Amount:      amount(s.TotalDebt),
			Icon:        iconWarning,
			Color:       colorRed,
		}}
	case ratio < 50:
		return []models.Insight{{
			Kind:        models.KindOpportunity,
			Title:       "Dívidas sob controle",
			Description: sprintf("As dívidas representam apenas %.0f%% do saldo de caixa.", ratio),
			Impact:      models.ImpactMedium,
			Amount:      amount(s.TotalDebt),
			Icon:        iconCheck,
			Color:       colorGreen,
		}}
	}
	return nil
}

func savingsRateInsight(c *ruleContext) []models.Insight {
	inflow, outflow := flowTotals(c.snapshot.Transactions)
	if inflow <= 0 {
		return nil
	}
	rate := (inflow - outflow) / inflow * 100
	switch {
	case rate > 30:
		return []models.Insight{{
			Kind:        models.KindOpportunity,
			Title:       "Taxa de poupança forte",
			Description: sprintf("%.1f%% das entradas retidas no período.", rate),
			Impact:      models.ImpactHigh,
			Amount:      amount(inflow - outflow),
			Icon:        iconGem,
			Color:       colorGreen,
		}}
	case rate < 10:
		return []models.Insight{{
			Kind:        models.KindAlert,
			Title:       "Taxa de poupança baixa",
			Description: sprintf("Apenas %.1f%% das entradas retidas. Reduza saídas não essenciais.", rate),
			Impact:      models.ImpactHigh,
			Icon:        iconDown,
			Color:       colorRed,
		}}
	}
	return nil
}

func outflowAmounts(s *models.Snapshot) []float64 {
	var amounts []float64
	for _, t := range s.Transactions {
		if t.Direction == models.Outflow {
			amounts = append(amounts, t.Amount)
		}
	}
	return amounts
}

func anomalyInsight(c *ruleContext) []models.Insight {
	amounts := outflowAmounts(c.snapshot)
	if len(amounts) <= minAnomalySample {
		return nil
	}
	m, sd := mean(amounts), stdDev(amounts)
	if sd == 0 {
		return nil
	}
	var count int
	var total float64
	for _, a := range amounts {
		if math.Abs((a-m)/sd) > anomalyZ {
			count++
			total += a
		}
	}
	if count == 0 {
		return nil
	}
	impact := models.ImpactMedium
	if count > 3 {
		impact = models.ImpactHigh
	}
	return []models.Insight{{
		Kind:        models.KindAlert,
		Title:       fmt.Sprintf("%d saída(s) atípica(s) detectada(s)", count),
		Description: sprintf("Valores bem acima do padrão habitual. Média: R$ %.2f", m),
		Impact:      impact,
		Amount:      amount(total),
		Icon:        iconWarning,
		Color:       colorRed,
	}}
}

func growthForecastInsight(c *ruleContext) []models.Insight {
	if len(c.patterns) == 0 {
		return nil
	}
	top := c.patterns[0]
	for _, p := range c.patterns[1:] {
		if p.VariationPct > top.VariationPct {
			top = p
		}
	}
	if top.VariationPct <= fastGrowth {
		return nil
	}
	return []models.Insight{{
		Kind:        models.KindForecast,
		Title:       fmt.Sprintf("%s em expansão rápida", top.Category),
		Description: sprintf("Crescimento de %.1f%%. Próximo mês: R$ %.2f", top.VariationPct, top.NextMonthForecast),
		Impact:      models.ImpactMedium,
		Amount:      amount(top.NextMonthForecast),
		Category:    top.Category,
		Icon:        iconRocket,
		Color:       colorPurple,
	}}
}

// seasonalMonths returns the calendar months (0-11) whose outflow total is
// well above the mean of the months with activity.
func seasonalMonths(s *models.Snapshot) []int {
	var count int
	totals := make(map[int]float64)
	for _, t := range s.Transactions {
		if t.Direction != models.Outflow || t.Date.IsZero() {
			continue
		}
		count++
		totals[int(t.Date.Month())-1] += t.Amount
	}
	if count <= minSeasonalitySample {
		return nil
	}
	values := make([]float64, 0, len(totals))
	for _, v := range totals {
		values = append(values, v)
	}
	threshold := mean(values) * seasonalPeak

	var peaks []int
	for month, v := range totals {
		if v > threshold {
			peaks = append(peaks, month)
		}
	}
	sort.Ints(peaks)
	return peaks
}

func seasonalityInsight(c *ruleContext) []models.Insight {
	peaks := seasonalMonths(c.snapshot)
	if len(peaks) == 0 {
		return nil
	}
	if len(peaks) > 3 {
		peaks = peaks[:3]
	}
	names := make([]string, len(peaks))
	for i, m := range peaks {
		names[i] = monthLabels[m]
	}
	return []models.Insight{{
		Kind:        models.KindForecast,
		Title:       "Padrão sazonal detectado",
		Description: fmt.Sprintf("Meses com saídas elevadas: %s. Reserve caixa para eles.", strings.Join(names, ", ")),
		Impact:      models.ImpactMedium,
		Icon:        iconCalendar,
		Color:       colorAmber,
	}}
}

func debtRecommendation(c *ruleContext) []string {
	s := c.snapshot
	if s.TotalDebt > 0 && s.TotalDebt > s.Balance*2 {
		return []string{"Dívidas acima do dobro do saldo: renegocie prazos e quite primeiro os itens vencidos"}
	}
	return nil
}

func reserveRecommendation(*ruleContext) []string {
	return []string{"Mantenha uma reserva de emergência equivalente a três meses de gastos"}
}
