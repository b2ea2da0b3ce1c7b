package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"Should treat nil as unknown", nil, KindUnknown},
		{"Should map missing records to not found", gorm.ErrRecordNotFound, KindNotFound},
		{"Should unwrap wrapped not found", fmt.Errorf("get: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"Should map unique violations to conflict", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"Should map not-null violations to invalid", &pgconn.PgError{Code: "23502"}, KindInvalid},
		{"Should map data exceptions to invalid", &pgconn.PgError{Code: "22001"}, KindInvalid},
		{"Should map connection exceptions to unavailable", &pgconn.PgError{Code: "08006"}, KindUnavailable},
		{"Should map too many connections to unavailable", &pgconn.PgError{Code: "53300"}, KindUnavailable},
		{"Should map admin shutdown to unavailable", &pgconn.PgError{Code: "57P01"}, KindUnavailable},
		{"Should leave syntax errors unknown", &pgconn.PgError{Code: "42601"}, KindUnknown},
		{"Should map bad connections to unavailable", driver.ErrBadConn, KindUnavailable},
		{"Should map deadlines to unavailable", context.DeadlineExceeded, KindUnavailable},
		{"Should map network errors to unavailable", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, KindUnavailable},
		{"Should map wrapped dial failures to unavailable", fmt.Errorf("failed to connect to `host=db user=app`: %w", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}), KindUnavailable},
		{"Should leave arbitrary errors unknown", errors.New("boom"), KindUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Run("Should name every kind", func(t *testing.T) {
		assert.Equal(t, "not_found", KindNotFound.String())
		assert.Equal(t, "invalid", KindInvalid.String())
		assert.Equal(t, "conflict", KindConflict.String())
		assert.Equal(t, "unavailable", KindUnavailable.String())
		assert.Equal(t, "unknown", KindUnknown.String())
	})
}
