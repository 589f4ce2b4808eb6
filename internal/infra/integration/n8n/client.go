package n8n

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type ForwardInput struct {
	LeadID    string
	LeadName  string
	LeadEmail string
	Message   string
	Timestamp string
}

// RelayError: o webhook respondeu com status de erro.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("webhook n8n falhou (status %d): %s", e.Status, e.Body)
}

type Client struct {
	webhookURL string
	http       *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Forward envia o payload como query params em um GET: é assim que o
// workflow do n8n está configurado para receber.
func (c *Client) Forward(ctx context.Context, input ForwardInput) error {
	if c.webhookURL == "" {
		return fmt.Errorf("webhook n8n não configurado")
	}

	u, err := url.Parse(c.webhookURL)
	if err != nil {
		return fmt.Errorf("url do webhook inválida: %w", err)
	}

	q := u.Query()
	q.Set("leadId", input.LeadID)
	q.Set("leadName", input.LeadName)
	q.Set("leadEmail", input.LeadEmail)
	q.Set("message", input.Message)
	q.Set("timestamp", input.Timestamp)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com n8n: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO WEBHOOK N8N (Status %d): %s\n", resp.StatusCode, string(body))
		return &RelayError{Status: resp.StatusCode, Body: string(body)}
	}

	return nil
}
