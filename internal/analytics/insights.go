package analytics

import (
	"fmt"
	"math"

	"github.com/Dan9191/cash-insights/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	maxInsights        = 8
	maxRecommendations = 6

	lowBalance     = 10000.0
	surplusBalance = 50000.0
	fastRise       = 25.0
	steepRise      = 50.0
)

const (
	iconSiren   = "🚨"
	iconWarning = "⚠️"
	iconGem     = "💎"
	iconChart   = "📈"

	colorRed    = "#ef4444"
	colorAmber  = "#f59e0b"
	colorGreen  = "#22c55e"
	colorPurple = "#8b5cf6"
)

// ruleContext is the shared input of every insight and recommendation rule
type ruleContext struct {
	snapshot     *models.Snapshot
	patterns     []models.CategoryPattern
	health       int
	monthInflow  float64
	monthOutflow float64
}

func newRuleContext(s *models.Snapshot, patterns []models.CategoryPattern, health int) *ruleContext {
	in, out := currentMonthFlows(s)
	return &ruleContext{snapshot: s, patterns: patterns, health: health, monthInflow: in, monthOutflow: out}
}

// insightRule emits zero or more insights. Rules never see each other's output.
type insightRule func(c *ruleContext) []models.Insight

var baseInsightRules = []insightRule{
	balanceInsight,
	risingCategoryInsights,
	monthlyFlowInsight,
}

// generateInsights runs every rule in order, numbers the result and only then
// applies the cap, so earlier rules always win.
func generateInsights(c *ruleContext, rules []insightRule) []models.Insight {
	insights := make([]models.Insight, 0, maxInsights)
	for _, rule := range rules {
		insights = append(insights, rule(c)...)
	}
	for i := range insights {
		insights[i].ID = fmt.Sprintf("insight-%d", i+1)
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func balanceInsight(c *ruleContext) []models.Insight {
	balance := c.snapshot.Balance
	switch {
	case balance < 0:
		return []models.Insight{{
			Kind:        models.KindAlert,
			Title:       "Saldo de caixa negativo",
			Description: sprintf("Saldo de caixa em R$ %.2f. Atenção urgente necessária.", balance),
			Impact:      models.ImpactHigh,
			Amount:      amount(math.Abs(balance)),
			Icon:        iconSiren,
			Color:       colorRed,
		}}
	case balance < lowBalance:
		return []models.Insight{{
			Kind:        models.KindAlert,
			Title:       "Saldo de caixa baixo",
			Description: sprintf("Saldo atual: R$ %.2f. Considere formar reservas.", balance),
			Impact:      models.ImpactMedium,
			Amount:      amount(balance),
			Icon:        iconWarning,
			Color:       colorAmber,
		}}
	case balance > surplusBalance:
		return []models.Insight{{
			Kind:        models.KindOpportunity,
			Title:       "Excedente de caixa saudável",
			Description: sprintf("Saldo de R$ %.2f. Considere investir o excedente.", balance),
			Impact:      models.ImpactHigh,
			Amount:      amount(balance),
			Icon:        iconGem,
			Color:       colorGreen,
		}}
	}
	return nil
}

func risingCategoryInsights(c *ruleContext) []models.Insight {
	var insights []models.Insight
	for _, p := range c.patterns {
		if p.Trend != models.TrendRising || p.VariationPct <= fastRise {
			continue
		}
		impact := models.ImpactMedium
		if p.VariationPct > steepRise {
			impact = models.ImpactHigh
		}
		insights = append(insights, models.Insight{
			Kind:        models.KindAlert,
			Title:       fmt.Sprintf("%s em alta acelerada", p.Category),
			Description: sprintf("Gastos recentes subiram %.1f%%", p.VariationPct),
			Impact:      impact,
			Amount:      amount(p.VariationPct),
			Category:    p.Category,
			Icon:        iconChart,
			Color:       colorRed,
		})
	}
	return insights
}

func monthlyFlowInsight(c *ruleContext) []models.Insight {
	net := c.monthInflow - c.monthOutflow
	if net >= 0 {
		return nil
	}
	return []models.Insight{{
		Kind:        models.KindAlert,
		Title:       "Fluxo de caixa negativo no mês",
		Description: sprintf("Déficit de R$ %.2f", math.Abs(net)),
		Impact:      models.ImpactHigh,
		Amount:      amount(math.Abs(net)),
		Icon:        iconWarning,
		Color:       colorAmber,
	}}
}

func amount(v float64) *float64 {
	return &v
}

// sprintf formats numbers the way the Brazilian operator reads them
func sprintf(format string, args ...any) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf(format, args...)
}
