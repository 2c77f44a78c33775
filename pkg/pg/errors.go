package pg

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)

// SQLSTATE codes for integrity violations.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	integrityClass          = "23"
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func IsDuplicateKeyError(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

func IsForeignKeyViolationError(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func IsNotNullViolationError(err error) bool {
	return hasCode(err, codeNotNullViolation)
}

// ConstraintTypeOf classifies an integrity constraint violation.
// ok is false when err is not a class 23 PostgreSQL error.
func ConstraintTypeOf(err error) (apperr.ConstraintType, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || !strings.HasPrefix(pgErr.Code, integrityClass) {
		return "", false
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return apperr.ConstraintUnique, true
	case codeForeignKeyViolation:
		return apperr.ConstraintForeignKey, true
	case codeNotNullViolation:
		return apperr.ConstraintNotNull, true
	default:
		return apperr.ConstraintOther, true
	}
}

// ConstraintName returns the violated constraint's name, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
