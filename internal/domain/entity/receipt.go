package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt es un recibo/factura de compra capturado por foto y extraído con IA.
type Receipt struct {
	ID              string
	OrganizationID  string
	ProjectID       string
	RubroID         *string // nil = sin categorizar
	Vendor          string
	Date            time.Time
	Total           decimal.Decimal
	LineItems       json.RawMessage // ítems extraídos por la IA, se guardan tal cual
	ConfidenceScore float64
	ImagePath       string // path en el bucket; el acceso es vía URL firmada
	CreatedBy       string
	CreatedAt       time.Time
}
