package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta una violación de constraint único (SQLSTATE 23505).
// Los repositorios la mapean a su error de dominio: email duplicado, segundo
// presupuesto del mismo proyecto, o carrera entre publicaciones concurrentes
// sobre (budget_id, version_number).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
