package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Names of the unique constraints created by the migrations.
const (
	EmailUniqueIndex    = "usuarios_email_lower_key"
	CPFUniqueConstraint = "usuarios_cpf_key"
)

// IsPgUniqueViolation reports whether err is a unique constraint violation
// and returns the violated constraint name.
func IsPgUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
