package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is the storage-level classification of a failed statement.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	notNullViolation    = "23502"
	checkViolation      = "23514"
	dataExceptionClass  = "22"
	connExceptionClass  = "08"
	insufficientRsClass = "53"
	adminShutdown       = "57P01"
	crashShutdown       = "57P02"
	cannotConnectNow    = "57P03"
)

func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyCode(pgErr.Code)
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return KindUnavailable
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return KindUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable
	}
	return KindUnknown
}

func classifyCode(code string) Kind {
	switch {
	case code == uniqueViolation:
		return KindConflict
	case code == notNullViolation, code == checkViolation, strings.HasPrefix(code, dataExceptionClass):
		return KindInvalid
	case strings.HasPrefix(code, connExceptionClass), strings.HasPrefix(code, insufficientRsClass):
		return KindUnavailable
	case code == adminShutdown, code == crashShutdown, code == cannotConnectNow:
		return KindUnavailable
	default:
		return KindUnknown
	}
}
