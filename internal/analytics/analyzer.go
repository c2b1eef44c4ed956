// Package analytics turns a snapshot of cash movements and debts into
// category patterns, a cash-flow forecast, a behavior profile, a health
// score, insights and recommendations.
package analytics

import (
	"context"
	"errors"

	"github.com/Dan9191/cash-insights/internal/models"
)

// ErrNilSnapshot is returned when Analyze is called without input
var ErrNilSnapshot = errors.New("analytics: nil snapshot")

// Analyzer produces an analysis result for one snapshot. Local computes it
// in-process; the remote analysis client delegates it over HTTP.
type Analyzer interface {
	Analyze(ctx context.Context, s *models.Snapshot) (*models.AnalysisResult, error)
}

// Option configures a Local analyzer
type Option func(*Local)

// WithAdvancedRules enables debt, savings-rate, anomaly, growth and
// seasonality insights on top of the base rules.
func WithAdvancedRules() Option {
	return func(l *Local) {
		l.insightRules = append(l.insightRules, advancedInsightRules...)
		l.recommendationRules = append(l.recommendationRules, advancedRecommendationRules...)
		l.seasonality = true
	}
}

// Local is the in-process reference implementation of Analyzer. It holds no
// state between runs.
type Local struct {
	insightRules        []insightRule
	recommendationRules []recommendationRule
	seasonality         bool
}

// NewLocal creates a local analyzer
func NewLocal(opts ...Option) *Local {
	l := &Local{
		insightRules:        append([]insightRule(nil), baseInsightRules...),
		recommendationRules: append([]recommendationRule(nil), baseRecommendationRules...),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Analyze runs the full pipeline. The result depends only on the snapshot,
// including its Now.
func (l *Local) Analyze(ctx context.Context, s *models.Snapshot) (*models.AnalysisResult, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patterns := AnalyzePatterns(s)
	forecast := ForecastCashFlow(s)
	behavior := ProfileBehavior(s, patterns)
	if l.seasonality {
		behavior.SeasonalityFlag = len(seasonalMonths(s)) > 0
	}
	health := ScoreHealth(s, patterns)

	rc := newRuleContext(s, patterns, health)
	return &models.AnalysisResult{
		Patterns:        patterns,
		Insights:        generateInsights(rc, l.insightRules),
		Forecast:        forecast,
		Behavior:        behavior,
		HealthScore:     health,
		Recommendations: generateRecommendations(rc, l.recommendationRules),
		Success:         true,
	}, nil
}
