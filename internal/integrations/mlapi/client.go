// Package mlapi delegates analysis runs to the remote analysis service
package mlapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dan9191/cash-insights/internal/analytics"
	"github.com/Dan9191/cash-insights/internal/config"
	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	healthPath  = "/health"
	analyzePath = "/api/analyze"

	statusOK      = "ok"
	statusPending = "pendente"
	statusOverdue = "vencida"
)

// Client is an analytics.Analyzer backed by the remote analysis service
type Client struct {
	baseURL        string
	healthTimeout  time.Duration
	analyzeTimeout time.Duration
	client         *http.Client
	log            *logrus.Logger
}

var _ analytics.Analyzer = (*Client)(nil)

// NewClient initializes a remote analysis client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:        cfg.MLAPIURL,
		healthTimeout:  cfg.MLHealthTimeout,
		analyzeTimeout: cfg.MLAnalyzeTimeout,
		client:         &http.Client{},
		log:            log,
	}
}

type wireTransaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"data"`
	Amount      float64 `json:"valor"`
	Type        string  `json:"tipo"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
}

type wireDebt struct {
	ID        string  `json:"id"`
	Desc      string  `json:"descricao"`
	Amount    float64 `json:"valor"`
	Remaining float64 `json:"valorRestante"`
	DueDate   string  `json:"data_vencimento,omitempty"`
	Status    string  `json:"status"`
	Creditor  string  `json:"credor,omitempty"`
}

type analyzePayload struct {
	Transactions []wireTransaction `json:"transacoes"`
	Expenses     []wireTransaction `json:"gastos_obras"`
	Balance      float64           `json:"saldo_atual"`
	TotalDebt    float64           `json:"total_dividas"`
	Debts        []wireDebt        `json:"dividas"`
}

// Health checks the service. Only a 200 reply with status "ok" counts as up.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}
	var health models.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if health.Status != statusOK {
		return fmt.Errorf("health check failed: status %q", health.Status)
	}
	return nil
}

// Submit posts the snapshot and returns the remote result unchanged. A reply
// flagged sucesso:false is returned together with a RemoteAnalysisError.
func (c *Client) Submit(ctx context.Context, s *models.Snapshot) (*models.AnalysisResult, error) {
	body, err := json.Marshal(payloadFrom(s))
	if err != nil {
		return nil, &analytics.RemoteAnalysisError{Message: "encode request", Cause: err}
	}
	c.log.Debugf("analysis request: %s", body)

	ctx, cancel := context.WithTimeout(ctx, c.analyzeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, &analytics.RemoteAnalysisError{Message: "create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &analytics.RemoteAnalysisError{Message: "execute request", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &analytics.RemoteAnalysisError{Message: "read response", Cause: err}
	}
	c.log.Debugf("analysis response: %s", raw)

	var result models.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &analytics.RemoteAnalysisError{Message: fmt.Sprintf("status %d", resp.StatusCode)}
		}
		return nil, &analytics.RemoteAnalysisError{Message: "decode response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		message := result.Error
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &result, &analytics.RemoteAnalysisError{Message: message}
	}
	return &result, nil
}

// Analyze checks the service health and, when it is up, submits the snapshot. It
// never falls back to local computation.
func (c *Client) Analyze(ctx context.Context, s *models.Snapshot) (*models.AnalysisResult, error) {
	if s == nil {
		return nil, analytics.ErrNilSnapshot
	}
	if err := c.Health(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Warnf("Analysis service at %s is unavailable: %v", c.baseURL, err)
		return nil, &analytics.UnavailableError{Endpoint: c.baseURL, Cause: err}
	}

	result, err := c.Submit(ctx, s)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Errorf("Remote analysis failed: %v", err)
		return nil, err
	}
	c.log.Infof("Remote analysis finished: health %d, %d insights", result.HealthScore, len(result.Insights))
	return result, nil
}

func payloadFrom(s *models.Snapshot) analyzePayload {
	p := analyzePayload{
		Transactions: make([]wireTransaction, 0, len(s.Transactions)),
		Expenses:     []wireTransaction{},
		Balance:      s.Balance,
		TotalDebt:    s.TotalDebt,
		Debts:        make([]wireDebt, 0, len(s.Debts)),
	}
	for _, t := range s.Transactions {
		p.Transactions = append(p.Transactions, wireTransaction{
			ID:          t.ID,
			Date:        formatDate(t.Date),
			Amount:      t.Amount,
			Type:        string(t.Direction),
			Category:    t.Category,
			Description: t.Description,
		})
	}
	for _, d := range s.Debts {
		status := statusPending
		if d.Overdue(s.Now) {
			status = statusOverdue
		}
		p.Debts = append(p.Debts, wireDebt{
			ID:        d.ID,
			Desc:      d.Description,
			Amount:    d.Amount,
			Remaining: d.AmountRemaining,
			DueDate:   formatDate(d.DueDate),
			Status:    status,
			Creditor:  d.Creditor,
		})
	}
	return p
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
