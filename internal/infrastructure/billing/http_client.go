// Package billing implementa el adaptador HTTP hacia la pasarela de pagos externa.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/ports"
)

var _ ports.BillingProcessor = (*HTTPProcessor)(nil)

// HTTPProcessor implementa BillingProcessor contra la API REST de la pasarela.
type HTTPProcessor struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPProcessor construye el adaptador.
func NewHTTPProcessor(baseURL, apiKey string) *HTTPProcessor {
	return &HTTPProcessor{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCheckout crea una sesión de pago y devuelve la URL a la que redirigir.
func (p *HTTPProcessor) CreateCheckout(ctx context.Context, in ports.CheckoutInput) (string, error) {
	var out struct {
		CheckoutURL string `json:"checkout_url"`
	}
	body := map[string]any{
		"organization_id": in.OrganizationID,
		"plan":            in.Plan,
		"seats":           in.Seats,
		"billing_cycle":   in.BillingCycle,
	}
	if err := p.do(ctx, http.MethodPost, "/v1/checkouts", body, &out); err != nil {
		return "", err
	}
	if out.CheckoutURL == "" {
		return "", fmt.Errorf("billing: la pasarela no devolvió checkout_url")
	}
	return out.CheckoutURL, nil
}

// CancelSubscription cancela la suscripción de la organización en la pasarela.
func (p *HTTPProcessor) CancelSubscription(ctx context.Context, organizationID string) error {
	return p.do(ctx, http.MethodPost, "/v1/subscriptions/"+organizationID+"/cancel", nil, nil)
}

// PauseSubscription pausa el cobro de la suscripción.
func (p *HTTPProcessor) PauseSubscription(ctx context.Context, organizationID string) error {
	return p.do(ctx, http.MethodPost, "/v1/subscriptions/"+organizationID+"/pause", nil, nil)
}

// ResumeSubscription reactiva una suscripción pausada.
func (p *HTTPProcessor) ResumeSubscription(ctx context.Context, organizationID string) error {
	return p.do(ctx, http.MethodPost, "/v1/subscriptions/"+organizationID+"/resume", nil, nil)
}

// PaymentHistory lista los pagos registrados para la organización.
func (p *HTTPProcessor) PaymentHistory(ctx context.Context, organizationID string) ([]dto.PaymentRecord, error) {
	var out struct {
		Items []dto.PaymentRecord `json:"items"`
	}
	if err := p.do(ctx, http.MethodGet, "/v1/subscriptions/"+organizationID+"/payments", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (p *HTTPProcessor) do(ctx context.Context, method, path string, body, out any) error {
	if p.baseURL == "" {
		return fmt.Errorf("billing: BILLING_BASE_URL no configurado")
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("billing: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("billing: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("billing: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("billing: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("billing: pasarela HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if out != nil {
		if err := json.Unmarshal(rawBody, out); err != nil {
			return fmt.Errorf("billing: deserializar respuesta: %w", err)
		}
	}
	return nil
}
