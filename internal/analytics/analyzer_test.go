package analytics

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(insights []models.Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Title
	}
	return out
}

func TestLocalAnalyzeEmpty(t *testing.T) {
	result, err := NewLocal().Analyze(context.Background(), snapshotOf(0))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Empty(t, result.Patterns)
	require.Len(t, result.Forecast, 6)
	for _, p := range result.Forecast {
		assert.Zero(t, p.ForecastInflow)
		assert.Zero(t, p.ForecastOutflow)
	}
	assert.Equal(t, 50, result.HealthScore)
	assert.Equal(t, "Domingo", result.Behavior.BusiestWeekday)
	assert.Equal(t, NoCategory, result.Behavior.DominantCategory)
	assert.Equal(t, 50, result.Behavior.EfficiencyPct)
	assert.Equal(t, []string{"Saldo de caixa baixo"}, titles(result.Insights))
	assert.Len(t, result.Recommendations, 4)
}

func TestLocalAnalyzeErrors(t *testing.T) {
	_, err := NewLocal().Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilSnapshot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLocal().Analyze(ctx, snapshotOf(0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalAnalyzeIsDeterministic(t *testing.T) {
	s := randomSnapshot(rand.New(rand.NewSource(7)))
	a := NewLocal(WithAdvancedRules())

	first, err := a.Analyze(context.Background(), s)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLocalAnalyzeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	analyzers := map[string]*Local{"base": NewLocal(), "advanced": NewLocal(WithAdvancedRules())}

	for i := 0; i < 200; i++ {
		s := randomSnapshot(rng)
		for name, a := range analyzers {
			result, err := a.Analyze(context.Background(), s)
			require.NoError(t, err)

			label := fmt.Sprintf("%s run %d", name, i)
			assert.GreaterOrEqual(t, result.HealthScore, 0, label)
			assert.LessOrEqual(t, result.HealthScore, 100, label)
			assert.LessOrEqual(t, len(result.Insights), maxInsights, label)
			assert.LessOrEqual(t, len(result.Recommendations), maxRecommendations, label)
			assert.Len(t, result.Forecast, forecastHorizon, label)
			assert.GreaterOrEqual(t, result.Behavior.EfficiencyPct, 0, label)
			assert.LessOrEqual(t, result.Behavior.EfficiencyPct, 100, label)

			ids := make(map[string]bool)
			for _, in := range result.Insights {
				assert.False(t, ids[in.ID], label)
				ids[in.ID] = true
			}
			for j, p := range result.Patterns {
				assert.Greater(t, p.MonthlyAverage, 0.0, label)
				assert.GreaterOrEqual(t, p.ConfidencePct, 50.0, label)
				assert.LessOrEqual(t, p.ConfidencePct, 95.0, label)
				if j > 0 {
					assert.GreaterOrEqual(t, result.Patterns[j-1].MonthlyAverage, p.MonthlyAverage, label)
				}
			}
		}
	}
}

func randomSnapshot(rng *rand.Rand) *models.Snapshot {
	categories := []string{"Obras", "Frete", "Lazer", "Aluguel"}
	s := snapshotOf(rng.Float64()*120000 - 20000)
	for i, n := 0, rng.Intn(60); i < n; i++ {
		date := testNow.AddDate(0, 0, -rng.Intn(365))
		if rng.Intn(3) == 0 {
			s.Transactions = append(s.Transactions, inflow(date, rng.Float64()*5000))
			continue
		}
		s.Transactions = append(s.Transactions, outflow(date, rng.Float64()*3000, categories[rng.Intn(len(categories))]))
	}
	for i, n := 0, rng.Intn(4); i < n; i++ {
		d := models.Debt{
			AmountRemaining: rng.Float64() * 20000,
			DueDate:         testNow.AddDate(0, 0, rng.Intn(60)-30),
			Status:          models.DebtPending,
		}
		s.Debts = append(s.Debts, d)
		s.TotalDebt += d.AmountRemaining
	}
	return s
}

func TestLocalAnalyzeAdvancedRules(t *testing.T) {
	s := snapshotOf(5000,
		inflow(day(2025, time.December, 1), 1000),
		outflow(day(2025, time.December, 2), 950, "Obras"),
	)
	s.Debts = []models.Debt{{AmountRemaining: 25000, DueDate: day(2025, time.December, 1), Status: models.DebtPending}}
	s.TotalDebt = 25000

	base, err := NewLocal().Analyze(context.Background(), s)
	require.NoError(t, err)
	advanced, err := NewLocal(WithAdvancedRules()).Analyze(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, []string{"Saldo de caixa baixo"}, titles(base.Insights))
	assert.Equal(t, []string{
		"Saldo de caixa baixo",
		"1 dívida(s) vencida(s)",
		"Dívidas superam o saldo de caixa",
		"Taxa de poupança baixa",
	}, titles(advanced.Insights), "base insights come first")
	assert.Contains(t, advanced.Recommendations, "Mantenha uma reserva de emergência equivalente a três meses de gastos")
	assert.NotContains(t, base.Recommendations, "Mantenha uma reserva de emergência equivalente a três meses de gastos")
}

func TestOverdueDebtInsight(t *testing.T) {
	s := snapshotOf(0)
	s.Debts = []models.Debt{
		{AmountRemaining: 100, DueDate: day(2025, time.December, 19), Status: models.DebtPending},
		{AmountRemaining: 50, DueDate: day(2025, time.December, 20), Status: models.DebtPending},
		{AmountRemaining: 70, DueDate: day(2025, time.January, 1), Status: models.DebtSettled},
		{AmountRemaining: 30, Status: models.DebtPending},
	}

	got := overdueDebtInsight(&ruleContext{snapshot: s})

	require.Len(t, got, 1)
	assert.Equal(t, "1 dívida(s) vencida(s)", got[0].Title)
	assert.Equal(t, 100.0, *got[0].Amount)
}

func TestDebtRatioInsight(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		debt    float64
		title   string
	}{
		{name: "heavy", balance: 1000, debt: 2500, title: "Dívidas superam o saldo de caixa"},
		{name: "light", balance: 1000, debt: 400, title: "Dívidas sob controle"},
		{name: "moderate", balance: 1000, debt: 1000},
		{name: "negative balance", balance: -10, debt: 1000},
		{name: "no debt", balance: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snapshotOf(tt.balance)
			s.TotalDebt = tt.debt

			got := debtRatioInsight(&ruleContext{snapshot: s})

			if tt.title == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.title, got[0].Title)
		})
	}
}

func TestSavingsRateInsight(t *testing.T) {
	strong := snapshotOf(0, inflow(day(2025, time.May, 1), 1000), outflow(day(2025, time.May, 2), 500, "X"))
	got := savingsRateInsight(&ruleContext{snapshot: strong})
	require.Len(t, got, 1)
	assert.Equal(t, models.KindOpportunity, got[0].Kind)

	weak := snapshotOf(0, inflow(day(2025, time.May, 1), 1000), outflow(day(2025, time.May, 2), 950, "X"))
	got = savingsRateInsight(&ruleContext{snapshot: weak})
	require.Len(t, got, 1)
	assert.Equal(t, models.KindAlert, got[0].Kind)

	assert.Empty(t, savingsRateInsight(&ruleContext{snapshot: snapshotOf(0)}))
}

func TestAnomalyInsight(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 11; i++ {
		txs = append(txs, outflow(day(2025, time.June, i+1), 100, "Obras"))
	}
	assert.Empty(t, anomalyInsight(&ruleContext{snapshot: snapshotOf(0, txs...)}), "no spread")

	txs = append(txs, outflow(day(2025, time.June, 20), 5000, "Obras"))
	got := anomalyInsight(&ruleContext{snapshot: snapshotOf(0, txs...)})

	require.Len(t, got, 1)
	assert.Equal(t, "1 saída(s) atípica(s) detectada(s)", got[0].Title)
	assert.Equal(t, models.ImpactMedium, got[0].Impact)
	assert.Equal(t, 5000.0, *got[0].Amount)
}

func TestGrowthForecastInsight(t *testing.T) {
	s := snapshotOf(0, append(
		monthlyOutflows("Obras", [12]float64{6: 100, 7: 100, 8: 100, 9: 110, 10: 110, 11: 110}),
		monthlyOutflows("Frete", [12]float64{6: 10, 7: 10, 8: 10, 9: 15, 10: 15, 11: 15})...,
	)...)

	got := growthForecastInsight(&ruleContext{snapshot: s, patterns: AnalyzePatterns(s)})

	require.Len(t, got, 1)
	assert.Equal(t, models.KindForecast, got[0].Kind)
	assert.Equal(t, "Frete", got[0].Category)
	assert.InDelta(t, 15.75, *got[0].Amount, 1e-9)
}

func TestSeasonality(t *testing.T) {
	var txs []models.Transaction
	for m := time.January; m <= time.December; m++ {
		txs = append(txs, outflow(day(2025, m, 3), 100, "Obras"), outflow(day(2025, m, 4), 100, "Obras"))
	}
	txs = append(txs, outflow(day(2025, time.March, 5), 400, "Obras"), outflow(day(2025, time.November, 5), 400, "Obras"))
	s := snapshotOf(0, txs...)

	assert.Equal(t, []int{2, 10}, seasonalMonths(s))
	got := seasonalityInsight(&ruleContext{snapshot: s})
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Description, "Mar, Nov")

	result, err := NewLocal(WithAdvancedRules()).Analyze(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Behavior.SeasonalityFlag)

	result, err = NewLocal().Analyze(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Behavior.SeasonalityFlag)

	assert.Empty(t, seasonalMonths(snapshotOf(0, txs[:20]...)), "too few outflows")
}
