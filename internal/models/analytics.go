package models

import "time"

// Trend classifies the recent movement of a category's spend
type Trend string

const (
	TrendRising  Trend = "crescente"
	TrendFalling Trend = "decrescente"
	TrendStable  Trend = "estavel"
)

// InsightKind classifies an insight
type InsightKind string

const (
	KindAlert          InsightKind = "alerta"
	KindOpportunity    InsightKind = "oportunidade"
	KindForecast       InsightKind = "previsao"
	KindRecommendation InsightKind = "recomendacao"
)

// Impact ranks the severity of an insight
type Impact string

const (
	ImpactHigh   Impact = "alto"
	ImpactMedium Impact = "medio"
	ImpactLow    Impact = "baixo"
)

// CategoryPattern represents spending statistics of one category
type CategoryPattern struct {
	Category          string  `json:"categoria"`
	MonthlyAverage    float64 `json:"mediaGastoMensal"`
	Trend             Trend   `json:"tendencia"`
	VariationPct      float64 `json:"variacao"`
	NextMonthForecast float64 `json:"previsaoProximoMes"`
	ConfidencePct     float64 `json:"confianca"`
	StdDev            float64 `json:"desvio_padrao"`
}

// CashFlowPoint represents one forecast month
type CashFlowPoint struct {
	MonthLabel        string  `json:"mes"`
	ForecastInflow    float64 `json:"previsaoEntrada"`
	ForecastOutflow   float64 `json:"previsaoSaida"`
	CumulativeBalance float64 `json:"saldoPrevisto"`
	ConfidencePct     float64 `json:"confianca"`
}

// BehaviorProfile represents spending habits
type BehaviorProfile struct {
	BusiestWeekday   string   `json:"diaMaisGastos"`
	MostActivePeriod string   `json:"horarioMaisAtivo"`
	DominantCategory string   `json:"categoriaDominante"`
	SeasonalityFlag  bool     `json:"padraoSazonal"`
	EfficiencyPct    int      `json:"eficienciaFinanceira"`
	CurrentBalance   *float64 `json:"saldoAtual,omitempty"`
}

// Insight represents a human-readable finding
type Insight struct {
	ID          string      `json:"id"`
	Kind        InsightKind `json:"tipo"`
	Title       string      `json:"titulo"`
	Description string      `json:"descricao"`
	Impact      Impact      `json:"impacto"`
	Amount      *float64    `json:"valor,omitempty"`
	Category    string      `json:"categoria,omitempty"`
	Icon        string      `json:"icon"`
	Color       string      `json:"cor"`
}

// AnalysisResult bundles every artifact of one analysis run
type AnalysisResult struct {
	Patterns        []CategoryPattern `json:"padroesPorCategoria"`
	Insights        []Insight         `json:"insights"`
	Forecast        []CashFlowPoint   `json:"previsaoFluxoCaixa"`
	Behavior        BehaviorProfile   `json:"analiseComportamento"`
	HealthScore     int               `json:"saudeFinanceira"`
	Recommendations []string          `json:"recomendacoes"`
	Success         bool              `json:"sucesso"`
	Error           string            `json:"erro,omitempty"`
}

// Digest represents the periodic summary mailed to the operator
type Digest struct {
	GeneratedAt     time.Time
	HealthScore     int
	Insights        []Insight
	Recommendations []string
	KeyRate         *float64
}
