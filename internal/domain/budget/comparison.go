package budget

import "github.com/shopspring/decimal"

// ConsumedPercentage calcula round(100 × real / planificado).
// Con costo planificado 0 devuelve 0: evita la división por cero y no señala
// sobrecosto aunque haya gasto real (comportamiento especificado del sistema,
// no un redondeo de cortesía).
func ConsumedPercentage(actual, planned decimal.Decimal) int64 {
	if planned.IsZero() {
		return 0
	}
	return actual.Mul(decimal.NewFromInt(100)).Div(planned).Round(0).IntPart()
}
