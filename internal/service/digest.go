package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/sirupsen/logrus"
)

// Digester mails the high-impact insights of one owner
type Digester struct {
	svc       *Service
	notifier  Notifier
	rates     RateSource
	ownerID   string
	recipient string
	log       *logrus.Logger
}

// NewDigester creates a digest job. rates may be nil.
func NewDigester(svc *Service, notifier Notifier, rates RateSource, ownerID, recipient string, log *logrus.Logger) *Digester {
	return &Digester{
		svc:       svc,
		notifier:  notifier,
		rates:     rates,
		ownerID:   ownerID,
		recipient: recipient,
		log:       log,
	}
}

// Run analyzes the owner's records and sends a digest when at least one
// high-impact insight exists.
func (d *Digester) Run(ctx context.Context) error {
	result, err := d.svc.Analyze(ctx, d.ownerID)
	if err != nil {
		return fmt.Errorf("digest analysis: %w", err)
	}

	var high []models.Insight
	for _, in := range result.Insights {
		if in.Impact == models.ImpactHigh {
			high = append(high, in)
		}
	}
	if len(high) == 0 {
		d.log.Infof("No high-impact insights, digest skipped")
		return nil
	}

	digest := models.Digest{
		GeneratedAt:     d.svc.now(),
		HealthScore:     result.HealthScore,
		Insights:        high,
		Recommendations: result.Recommendations,
	}
	if d.rates != nil {
		if rate, err := d.rates.KeyRate(ctx); err != nil {
			d.log.Warnf("Key rate unavailable for digest: %v", err)
		} else {
			digest.KeyRate = &rate
		}
	}

	if err := d.notifier.SendInsightDigest(d.recipient, digest); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
