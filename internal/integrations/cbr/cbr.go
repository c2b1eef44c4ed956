package cbr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/cash-insights/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// lookback is how far back the key rate series is requested
const lookback = 30 * 24 * time.Hour

// Client fetches the central bank key rate used as investment benchmark
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time
}

// NewClient initializes a new key rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.CBRURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

func (c *Client) buildSOAPRequest() string {
	to := c.now()
	from := to.Add(-lookback)
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
	<soap12:Body>
		<KeyRate xmlns="http://web.cbr.ru/">
			<fromDate>%s</fromDate>
			<ToDate>%s</ToDate>
		</KeyRate>
	</soap12:Body>
</soap12:Envelope>`, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *Client) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("CBR XML response: %s", body)
	return body, nil
}

// parseKeyRate extracts the most recent rate. The service lists rows newest first.
func parseKeyRate(raw []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	rows := doc.FindElements("//diffgram/KeyRate/KR")
	if len(rows) == 0 {
		return 0, fmt.Errorf("no key rate data found in XML")
	}
	rate := rows[0].FindElement("./Rate")
	if rate == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(rate.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate: %w", err)
	}
	return value, nil
}

// KeyRate retrieves the current key rate in percent
func (c *Client) KeyRate(ctx context.Context) (float64, error) {
	body, err := c.sendRequest(ctx, c.buildSOAPRequest())
	if err != nil {
		return 0, err
	}
	rate, err := parseKeyRate(body)
	if err != nil {
		return 0, err
	}
	c.log.Infof("Retrieved key rate: %.2f%%", rate)
	return rate, nil
}
