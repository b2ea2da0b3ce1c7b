package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"postapi/logger"
)

func init() {
	logger.InitForTests()
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := Open(postgres.New(postgres.Config{Conn: sqlDB}), false)
	require.NoError(t, err)
	return db, mock
}

func TestPing(t *testing.T) {
	t.Run("Should succeed when the database answers", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		require.NoError(t, Ping(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should surface ping failures", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err := Ping(context.Background(), db)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClose(t *testing.T) {
	t.Run("Should close the underlying pool", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectClose()

		require.NoError(t, Close(db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
