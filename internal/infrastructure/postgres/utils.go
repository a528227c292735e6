package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de violación de constraint único.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta la violación de un índice o constraint único:
// el índice parcial de sesiones activas, los unique de email, company_code,
// nombre de plan o los pares (project_id, user_id) y (chat_room_id, user_id).
// Los repositorios la traducen a domain.ErrConflict o domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
