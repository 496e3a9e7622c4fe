package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptExtractionDTO resultado de la extracción IA de un recibo.
type ReceiptExtractionDTO struct {
	Vendor          string          `json:"vendor"`
	Date            string          `json:"date"` // YYYY-MM-DD tal como lo devuelve el modelo
	Total           decimal.Decimal `json:"total"`
	LineItems       json.RawMessage `json:"line_items"`
	ConfidenceScore float64         `json:"confidence_score"`
}

// ExtractReceiptResponse salida del endpoint de extracción: campos sugeridos
// más el path de la imagen ya subida al bucket.
type ExtractReceiptResponse struct {
	ImagePath  string               `json:"image_path"`
	Extraction ReceiptExtractionDTO `json:"extraction"`
}

// CreateReceiptRequest entrada para registrar un recibo (tras revisar la extracción).
type CreateReceiptRequest struct {
	ProjectID       string          `json:"project_id" validate:"required,uuid"`
	RubroID         *string         `json:"rubro_id" validate:"omitempty,uuid"`
	Vendor          string          `json:"vendor" validate:"required,max=200"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	Total           decimal.Decimal `json:"total" validate:"required"`
	LineItems       json.RawMessage `json:"line_items"`
	ConfidenceScore float64         `json:"confidence_score"`
	ImagePath       string          `json:"image_path" validate:"required"`
}

// ReceiptResponse salida de un recibo. ImageURL es una URL firmada de corta
// duración (1 hora); el path del bucket nunca se expone como URL pública.
type ReceiptResponse struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"project_id"`
	RubroID         *string         `json:"rubro_id,omitempty"`
	Vendor          string          `json:"vendor"`
	Date            time.Time       `json:"date"`
	Total           decimal.Decimal `json:"total"`
	LineItems       json.RawMessage `json:"line_items,omitempty"`
	ConfidenceScore float64         `json:"confidence_score"`
	ImageURL        string          `json:"image_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReceiptListResponse listado de recibos de un proyecto.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
