package analytics

import (
	"fmt"

	"github.com/Dan9191/cash-insights/internal/models"
)

const (
	emergencyBalance = 5000.0
	investBalance    = 30000.0
	criticalHealth   = 40
	fairHealth       = 70
)

// recommendationRule emits zero or more recommendation lines
type recommendationRule func(c *ruleContext) []string

var baseRecommendationRules = []recommendationRule{
	balanceRecommendations,
	healthRecommendations,
	fastestRisingRecommendation,
	trackedCategoriesRecommendation,
}

func generateRecommendations(c *ruleContext, rules []recommendationRule) []string {
	recommendations := make([]string, 0, maxRecommendations)
	for _, rule := range rules {
		recommendations = append(recommendations, rule(c)...)
	}
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func balanceRecommendations(c *ruleContext) []string {
	switch balance := c.snapshot.Balance; {
	case balance < 0:
		return []string{
			"URGENTE: recupere o saldo de caixa negativo",
			"Suspenda novos gastos até o caixa se estabilizar",
		}
	case balance < emergencyBalance:
		return []string{
			"Priorize a formação de uma reserva de emergência",
			"Cobre recebíveis e corte gastos não essenciais",
		}
	}
	return nil
}

func healthRecommendations(c *ruleContext) []string {
	switch {
	case c.health < criticalHealth:
		return []string{
			"Revise todas as despesas e corte o que não for necessário",
			"Renegocie contratos e prazos de pagamento",
		}
	case c.health < fairHealth:
		return []string{
			"Acompanhe de perto as categorias em alta",
			"Busque formas de otimizar custos operacionais",
		}
	}
	lines := []string{"Finanças saudáveis, continue monitorando"}
	if c.snapshot.Balance > investBalance {
		lines = append(lines, "Considere investir parte do excedente")
	}
	return lines
}

func fastestRisingRecommendation(c *ruleContext) []string {
	var fastest *models.CategoryPattern
	for i := range c.patterns {
		p := &c.patterns[i]
		if p.Trend == models.TrendRising && (fastest == nil || p.VariationPct > fastest.VariationPct) {
			fastest = p
		}
	}
	if fastest == nil {
		return nil
	}
	return []string{sprintf("Atenção: a categoria %s está subindo %.0f%%", fastest.Category, fastest.VariationPct)}
}

func trackedCategoriesRecommendation(c *ruleContext) []string {
	if n := len(c.snapshot.Categories); n > 0 {
		return []string{fmt.Sprintf("%d categorias cadastradas em acompanhamento", n)}
	}
	return nil
}
