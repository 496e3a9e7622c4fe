// Package budget contiene la lógica pura de snapshots de presupuesto:
// parseo del árbol secciones → ítems, validación estructural y totales.
// No toca persistencia; opera sobre el JSON guardado en budget_versions.
package budget

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexAmount es un monto tolerante en el JSON del snapshot: acepta números y
// strings numéricos; cualquier otra cosa (ausente, "bad", null) queda con
// Valid=false y cuenta como 0 en las sumas. Los snapshots vienen de clientes
// heterogéneos y conviven ambas representaciones.
type FlexAmount struct {
	decimal.Decimal
	Valid bool
}

// UnmarshalJSON nunca falla: un valor no numérico deja el monto en cero inválido.
func (a *FlexAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = FlexAmount{}
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		*a = FlexAmount{}
		return nil
	}
	a.Decimal = d
	a.Valid = true
	return nil
}

// MarshalJSON serializa el monto como número; inválido se serializa como 0.
func (a FlexAmount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("0"), nil
	}
	return []byte(a.Decimal.String()), nil
}

// OrZero devuelve el valor, o cero si el monto es inválido.
func (a FlexAmount) OrZero() decimal.Decimal {
	if a.Valid {
		return a.Decimal
	}
	return decimal.Zero
}

// Item es una partida de una sección del presupuesto.
type Item struct {
	Name     string     `json:"name"`
	Unit     string     `json:"unit,omitempty"`
	Quantity FlexAmount `json:"quantity"`
	Cost     FlexAmount `json:"cost"`
	Subtotal FlexAmount `json:"subtotal"`
}

// Section es una sección del snapshot, normalmente ligada a un rubro.
// Subtotal y Cost a nivel de sección son opcionales: si están presentes
// tienen prioridad sobre la suma de los ítems (ambas representaciones
// conviven en snapshots históricos).
type Section struct {
	RubroID  string      `json:"rubro_id,omitempty"`
	Name     string      `json:"name"`
	Subtotal *FlexAmount `json:"subtotal,omitempty"`
	Cost     *FlexAmount `json:"cost,omitempty"`
	Items    []Item      `json:"items"`
}

// Snapshot es el árbol completo de un presupuesto: lista ordenada de secciones.
type Snapshot struct {
	Sections []Section `json:"sections"`
}

// Parse deserializa el JSON crudo de un snapshot. No valida estructura;
// usar Validate antes de publicar una versión.
func Parse(raw json.RawMessage) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("snapshot: JSON inválido: %w", err)
	}
	return &s, nil
}

// Validate verifica la estructura mínima exigida al publicar una versión:
// sections debe ser una lista, cada sección debe traer una lista de ítems y
// cada ítem debe traer quantity y cost numéricos. El subtotal sigue siendo
// tolerante (no numérico → 0 en las sumas).
func (s *Snapshot) Validate() error {
	if s.Sections == nil {
		return fmt.Errorf("snapshot: sections debe ser una lista")
	}
	for i, sec := range s.Sections {
		if sec.Items == nil {
			return fmt.Errorf("snapshot: la sección %d no tiene lista de items", i)
		}
		for j, it := range sec.Items {
			if !it.Quantity.Valid {
				return fmt.Errorf("snapshot: item %d de la sección %d: quantity debe ser numérico", j, i)
			}
			if !it.Cost.Valid {
				return fmt.Errorf("snapshot: item %d de la sección %d: cost debe ser numérico", j, i)
			}
		}
	}
	return nil
}

// TotalAmount es el total del snapshot: suma del subtotal de todos los ítems
// de todas las secciones. Siempre a nivel de ítem; los subtotales de sección
// solo se usan en la comparación real-vs-presupuesto.
func (s *Snapshot) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, sec := range s.Sections {
		for _, it := range sec.Items {
			total = total.Add(it.Subtotal.OrZero())
		}
	}
	return total
}

// BudgetedAmount devuelve el monto presupuestado de la sección: el subtotal
// explícito de la sección si existe, o la suma de los subtotales de sus ítems.
func (sec *Section) BudgetedAmount() decimal.Decimal {
	if sec.Subtotal != nil && sec.Subtotal.Valid {
		return sec.Subtotal.Decimal
	}
	total := decimal.Zero
	for _, it := range sec.Items {
		total = total.Add(it.Subtotal.OrZero())
	}
	return total
}

// PlannedCost devuelve el costo planificado de la sección: el cost explícito
// de la sección si existe, o la suma de los costos de sus ítems.
func (sec *Section) PlannedCost() decimal.Decimal {
	if sec.Cost != nil && sec.Cost.Valid {
		return sec.Cost.Decimal
	}
	total := decimal.Zero
	for _, it := range sec.Items {
		total = total.Add(it.Cost.OrZero())
	}
	return total
}
