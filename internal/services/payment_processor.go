package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Intent is the processor's client-side confirmation handle.
type Intent struct {
	Ref          string `json:"ref"`
	ClientSecret string `json:"client_secret"`
}

// Processor is the external payment boundary. It never exposes raw card
// data to this service; the embedded widget on the client handles that.
type Processor interface {
	// CreateIntent registers a pending charge and returns the handle the
	// client confirms against.
	CreateIntent(ctx context.Context, amount float64, currency, description string) (*Intent, error)
	// Charge executes the transfer for a previously created intent.
	Charge(ctx context.Context, ref string) error
}

// HTTPProcessor talks to the real payment processor API.
type HTTPProcessor struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewHTTPProcessor(apiURL, apiKey string, timeout time.Duration) *HTTPProcessor {
	return &HTTPProcessor{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProcessor) CreateIntent(ctx context.Context, amount float64, currency, description string) (*Intent, error) {
	payload, err := json.Marshal(map[string]interface{}{
		// processors bill in minor units
		"amount":      int64(amount*100 + 0.5),
		"currency":    currency,
		"description": description,
	})
	if err != nil {
		return nil, err
	}

	body, err := p.post(ctx, p.apiURL+"/payment_intents", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode processor response: %w", err)
	}
	if resp.ID == "" || resp.ClientSecret == "" {
		return nil, fmt.Errorf("processor returned incomplete intent")
	}

	return &Intent{Ref: resp.ID, ClientSecret: resp.ClientSecret}, nil
}

func (p *HTTPProcessor) Charge(ctx context.Context, ref string) error {
	body, err := p.post(ctx, p.apiURL+"/payment_intents/"+ref+"/confirm", []byte("{}"))
	if err != nil {
		return err
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode processor response: %w", err)
	}
	if resp.Status != "succeeded" {
		return fmt.Errorf("processor rejected charge: status %s", resp.Status)
	}
	return nil
}

func (p *HTTPProcessor) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build processor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("processor request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read processor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("processor returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// MockProcessor approves everything instantly. Used when no processor API
// key is configured, so the demo flow works end to end.
type MockProcessor struct{}

func (MockProcessor) CreateIntent(_ context.Context, _ float64, _, _ string) (*Intent, error) {
	ref := "mock_" + uuid.NewString()
	return &Intent{Ref: ref, ClientSecret: ref + "_secret"}, nil
}

func (MockProcessor) Charge(context.Context, string) error { return nil }
