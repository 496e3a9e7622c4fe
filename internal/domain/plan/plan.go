// Package plan define los planes de suscripción y sus límites de recursos.
// El mapeo plan → límites es una tabla estática: exactamente un registro por
// plan; advance es el único cuyo techo de asientos es dinámico (lo fija la
// pasarela de pagos en la organización, no esta tabla).
package plan

import "fmt"

// Planes de suscripción válidos.
const (
	Free       = "free"
	Advance    = "advance"
	Enterprise = "enterprise"
)

// Unlimited marca un límite sin tope.
const Unlimited = 0

// Limits son los techos de recursos de un plan.
type Limits struct {
	MaxProjects           int  // 0 = ilimitado
	MaxReceiptsPerProject int  // 0 = ilimitado
	MaxSeats              int  // 0 = ilimitado; ignorado si SeatsDynamic
	SeatsDynamic          bool // advance: el techo es el SeatCount de la organización
	ReportsEnabled        bool
}

// LimitsFor devuelve los límites del plan. Un plan desconocido se trata como free.
func LimitsFor(p string) Limits {
	switch p {
	case Advance:
		return Limits{
			MaxProjects:           10,
			MaxReceiptsPerProject: 100,
			SeatsDynamic:          true,
			ReportsEnabled:        true,
		}
	case Enterprise:
		return Limits{
			MaxProjects:           Unlimited,
			MaxReceiptsPerProject: Unlimited,
			MaxSeats:              Unlimited,
			ReportsEnabled:        true,
		}
	default:
		return Limits{
			MaxProjects:           1,
			MaxReceiptsPerProject: 10,
			MaxSeats:              1,
			ReportsEnabled:        false,
		}
	}
}

// IsValid informa si p es un plan conocido.
func IsValid(p string) bool {
	return p == Free || p == Advance || p == Enterprise
}

// Decision es el resultado de una verificación de límites: permitido, o
// denegado con una razón legible para el usuario. La denegación es un
// resultado esperado de negocio, no un error; los fallos de infraestructura
// viajan por el canal de error normal.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow construye una decisión permitida.
func Allow() Decision { return Decision{Allowed: true} }

// Deny construye una decisión denegada con la razón dada.
func Deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Denyf construye una decisión denegada con formato.
func Denyf(format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}
