package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/cash-insights/internal/config"
	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendInsightDigest mails the high-impact insights of an analysis run
func (s *Sender) SendInsightDigest(to string, digest models.Digest) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Cash Insights: %d item(ns) requerem atenção", len(digest.Insights))
	e.Text = []byte(digestBody(digest))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func digestBody(d models.Digest) string {
	p := message.NewPrinter(language.BrazilianPortuguese)

	var b strings.Builder
	b.WriteString("Olá,\n\n")
	fmt.Fprintf(&b, "Análise de %s. Saúde financeira: %d/100.\n", d.GeneratedAt.Format("2006-01-02 15:04"), d.HealthScore)

	b.WriteString("\nRequer atenção:\n")
	for _, in := range d.Insights {
		fmt.Fprintf(&b, "- %s: %s", in.Title, in.Description)
		if in.Amount != nil {
			b.WriteString(p.Sprintf(" (R$ %.2f)", *in.Amount))
		}
		b.WriteString("\n")
	}

	if len(d.Recommendations) > 0 {
		b.WriteString("\nRecomendações:\n")
		for _, r := range d.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if d.KeyRate != nil {
		b.WriteString(p.Sprintf("\nTaxa básica do banco central: %.2f%% ao ano, piso para qualquer investimento do excedente.\n", *d.KeyRate))
	}

	b.WriteString("\nAtenciosamente,\nCash Insights")
	return b.String()
}
