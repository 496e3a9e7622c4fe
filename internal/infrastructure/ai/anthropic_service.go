package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa ReceiptExtractor.
var _ ports.ReceiptExtractor = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Eres un asistente contable especializado en recibos y facturas de compra de materiales de construcción.
Analiza la imagen del recibo y devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "vendor": "<nombre del proveedor o comercio>",
  "date": "<fecha del recibo en formato YYYY-MM-DD>",
  "total": <número: total del recibo sin símbolos de moneda>,
  "line_items": [
    {"description": "<descripción de la partida>", "quantity": <número>, "unit_price": <número>, "amount": <número>}
  ],
  "confidence_score": <número decimal entre 0.0 y 1.0>
}

Reglas:
- vendor: el nombre tal como aparece impreso; si no se lee, cadena vacía.
- date: si solo hay día y mes, asume el año más reciente posible; si es ilegible, cadena vacía.
- total: el total final pagado. Si hay varios totales, el de mayor jerarquía (TOTAL / TOTAL A PAGAR).
- line_items: lista vacía si las partidas no se distinguen.
- confidence_score: 0.9–1.0 = imagen clara y campos legibles, 0.7–0.89 = parcialmente legible, <0.7 = estimado.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// AnthropicService adaptador que implementa ReceiptExtractor usando la API REST
// de Anthropic (Claude) con entrada de imagen. Usa net/http de la librería
// estándar; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además su propio context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentPart `json:"content"`
}

type anthropicContentPart struct {
	Type   string                 `json:"type"`
	Text   string                 `json:"text,omitempty"`
	Source *anthropicImageSource  `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`       // siempre "base64"
	MediaType string `json:"media_type"` // image/jpeg, image/png, image/webp
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// receiptPayload es el JSON que esperamos recibir del modelo.
type receiptPayload struct {
	Vendor          string          `json:"vendor"`
	Date            string          `json:"date"`
	Total           float64         `json:"total"`
	LineItems       json.RawMessage `json:"line_items"`
	ConfidenceScore float64         `json:"confidence_score"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque Claude lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractReceipt envía la imagen del recibo a Claude y devuelve los campos extraídos.
func (s *AnthropicService) ExtractReceipt(ctx context.Context, image []byte, mediaType string) (*dto.ReceiptExtractionDTO, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("AI: imagen vacía")
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContentPart{
					{
						Type: "image",
						Source: &anthropicImageSource{
							Type:      "base64",
							MediaType: mediaType,
							Data:      base64.StdEncoding.EncodeToString(image),
						},
					},
					{Type: "text", Text: "Extrae los campos de este recibo."},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}

	rawText := anthResp.Content[0].Text

	// Parseo seguro: extraer solo el bloque JSON aunque Claude añada texto adicional.
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}

	var extraction receiptPayload
	if err := json.Unmarshal([]byte(cleanJSON), &extraction); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de extracción: %w (JSON extraído: %s)", err, cleanJSON)
	}

	confidence := extraction.ConfidenceScore
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	lineItems := extraction.LineItems
	if len(lineItems) == 0 {
		lineItems = json.RawMessage("[]")
	}

	return &dto.ReceiptExtractionDTO{
		Vendor:          extraction.Vendor,
		Date:            extraction.Date,
		Total:           decimal.NewFromFloat(extraction.Total),
		LineItems:       lineItems,
		ConfidenceScore: confidence,
	}, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
