package cbr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/cash-insights/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyRateReply = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <KeyRate xmlns="">
            <KR><DT>2025-10-27T00:00:00+03:00</DT><Rate>16.50</Rate></KR>
            <KR><DT>2025-09-15T00:00:00+03:00</DT><Rate>17.00</Rate></KR>
          </KeyRate>
        </diffgr:diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	c := NewClient(&config.Config{CBRURL: url}, log)
	c.now = func() time.Time { return time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestKeyRate(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "http://web.cbr.ru/KeyRate", r.Header.Get("SOAPAction"))
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Write([]byte(keyRateReply))
	}))
	defer server.Close()

	rate, err := newTestClient(server.URL).KeyRate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 16.5, rate)
	assert.Contains(t, body, "<fromDate>2025-10-02</fromDate>")
	assert.Contains(t, body, "<ToDate>2025-11-01</ToDate>")
}

func TestKeyRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
	}{
		{name: "bad status", status: http.StatusServiceUnavailable},
		{name: "not xml", status: http.StatusOK, reply: "<root><open></root>"},
		{name: "no rows", status: http.StatusOK, reply: `<root><diffgram><KeyRate/></diffgram></root>`},
		{name: "no rate", status: http.StatusOK, reply: `<root><diffgram><KeyRate><KR><DT>x</DT></KR></KeyRate></diffgram></root>`},
		{name: "bad rate", status: http.StatusOK, reply: `<root><diffgram><KeyRate><KR><Rate>n/a</Rate></KR></KeyRate></diffgram></root>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.reply))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).KeyRate(context.Background())
			assert.Error(t, err)
		})
	}
}
