package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/cash-insights/internal/analytics"
	"github.com/Dan9191/cash-insights/internal/config"
	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service loads records, runs the configured analysis strategy and turns
// strategy failures into minimal results.
type Service struct {
	repo     RecordStore
	analyzer analytics.Analyzer
	served   analytics.Analyzer
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time

	mu         sync.Mutex
	lastHealth map[string]int
}

// NewService initializes a new service. analyzer backs the dashboard and may
// be remote; served answers analysis requests posted to this process and is
// always local.
func NewService(repo RecordStore, analyzer, served analytics.Analyzer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		analyzer:   analyzer,
		served:     served,
		log:        log,
		config:     cfg,
		now:        time.Now,
		lastHealth: make(map[string]int),
	}
}

// LoadSnapshot reads every record of the owner and normalizes them
func (s *Service) LoadSnapshot(ctx context.Context, ownerID string) (*models.Snapshot, error) {
	var (
		transactions []models.RawTransaction
		expenses     []models.RawTransaction
		debts        []models.RawDebt
		categories   []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transactions, err = s.repo.ListTransactions(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.repo.ListExpenses(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		debts, err = s.repo.ListDebts(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.repo.ListCategories(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	snapshot := analytics.NewSnapshot(s.now(), transactions, expenses, debts, categories, analytics.SnapshotOptions{
		HistoryMonths: s.config.HistoryMonths,
	})
	if snapshot.Coerced > 0 {
		s.log.Warnf("Coerced %d unparseable amounts to zero for owner %q", snapshot.Coerced, ownerID)
	}
	s.log.Debugf("Loaded snapshot for owner %q: %d transactions, %d expenses, %d debts",
		ownerID, len(snapshot.Transactions), len(snapshot.Expenses), len(snapshot.Debts))
	return snapshot, nil
}

// Analyze runs the configured strategy over the owner's records. Strategy
// failures are returned as degraded results, not errors; only store failures
// and caller cancellation are errors.
func (s *Service) Analyze(ctx context.Context, ownerID string) (*models.AnalysisResult, error) {
	snapshot, err := s.LoadSnapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.log.Warnf("Analysis failed for owner %q: %v", ownerID, err)
		return analytics.Degrade(err, s.priorHealth(ownerID)), nil
	}

	s.mu.Lock()
	s.lastHealth[ownerID] = result.HealthScore
	s.mu.Unlock()
	return result, nil
}

func (s *Service) priorHealth(ownerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHealth[ownerID]
}

// ServeAnalysis analyzes a snapshot posted by another deployment
func (s *Service) ServeAnalysis(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResult, error) {
	snapshot := analytics.SnapshotFromRequest(s.now(), req)
	result, err := s.served.Analyze(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze request: %w", err)
	}
	s.log.Infof("Served analysis: %d transactions, health %d", len(snapshot.Transactions), result.HealthScore)
	return result, nil
}
