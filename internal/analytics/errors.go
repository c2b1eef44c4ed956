package analytics

import (
	"errors"
	"fmt"

	"github.com/Dan9191/cash-insights/internal/models"
)

const (
	offlineInsightID    = "warning-ml"
	processingInsightID = "exception"
	iconPlug            = "🔌"
)

// UnavailableError reports that the remote analysis service failed its
// availability check. It is surfaced as-is, never replaced by a local run.
type UnavailableError struct {
	Endpoint string
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis service unavailable at %s: %v", e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("analysis service unavailable at %s", e.Endpoint)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// RemoteAnalysisError reports a failed, timed out or rejected analysis call
type RemoteAnalysisError struct {
	Message string
	Cause   error
}

func (e *RemoteAnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("remote analysis failed: %s: %v", e.Message, e.Cause)
	}
	return "remote analysis failed: " + e.Message
}

func (e *RemoteAnalysisError) Unwrap() error {
	return e.Cause
}

// Degrade turns an analysis failure into a well-formed minimal result. An
// unavailable service yields one offline alert and a zero score; any other
// failure yields one processing-error alert and keeps priorHealth.
func Degrade(err error, priorHealth int) *models.AnalysisResult {
	result := &models.AnalysisResult{
		Patterns:        []models.CategoryPattern{},
		Forecast:        []models.CashFlowPoint{},
		Recommendations: []string{},
		Error:           err.Error(),
	}

	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		result.HealthScore = 0
		result.Insights = []models.Insight{{
			ID:          offlineInsightID,
			Kind:        models.KindAlert,
			Title:       "Serviço de análise offline",
			Description: fmt.Sprintf("O serviço de análise em %s não está em execução. Inicie-o e atualize a análise.", unavailable.Endpoint),
			Impact:      models.ImpactHigh,
			Icon:        iconPlug,
			Color:       colorRed,
		}}
		return result
	}

	message := err.Error()
	var remote *RemoteAnalysisError
	if errors.As(err, &remote) && remote.Message != "" {
		message = remote.Message
	}
	result.HealthScore = priorHealth
	result.Insights = []models.Insight{{
		ID:          processingInsightID,
		Kind:        models.KindAlert,
		Title:       "Erro ao processar dados",
		Description: message,
		Impact:      models.ImpactHigh,
		Icon:        iconCross,
		Color:       colorRed,
	}}
	return result
}
