package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	rawDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	db := sqlx.NewDb(rawDB, "mysql")

	cleanup := func() {
		_ = db.Close()
	}
	return db, mock, cleanup
}

func prepareRows() *sqlmock.Rows {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	return sqlmock.NewRows([]string{
		"id", "candidate", "is_prime", "tested_at",
	}).AddRow(
		"3f1c0c1e-0000-0000-0000-000000000001", 7919, true, now,
	)
}

func TestVerdictStore_Record(t *testing.T) {
	ctx := context.Background()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	expectedSQL := "INSERT INTO prime_verdicts (id, candidate, is_prime, tested_at) VALUES (?, ?, ?, ?)"

	mock.ExpectExec(regexp.QuoteMeta(expectedSQL)).
		WithArgs(sqlmock.AnyArg(), int64(341), false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewVerdictStoreWithDB(db)

	id, err := s.Record(ctx, 341, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerdictStore_Find(t *testing.T) {
	ctx := context.Background()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	expectedSQL := "SELECT id, candidate, is_prime, tested_at FROM prime_verdicts WHERE candidate = ? ORDER BY tested_at DESC LIMIT 1"

	mock.ExpectQuery(regexp.QuoteMeta(expectedSQL)).
		WithArgs(int64(7919)).
		WillReturnRows(prepareRows())

	s := NewVerdictStoreWithDB(db)

	record, err := s.Find(ctx, 7919)
	assert.NoError(t, err)
	assert.Equal(t, int64(7919), record.Candidate)
	assert.True(t, record.IsPrime)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerdictStore_Find_NotFound(t *testing.T) {
	ctx := context.Background()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	expectedSQL := "SELECT id, candidate, is_prime, tested_at FROM prime_verdicts WHERE candidate = ? ORDER BY tested_at DESC LIMIT 1"

	mock.ExpectQuery(regexp.QuoteMeta(expectedSQL)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "candidate", "is_prime", "tested_at"}))

	s := NewVerdictStoreWithDB(db)

	_, err := s.Find(ctx, 4)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerdictStore_Recent(t *testing.T) {
	ctx := context.Background()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "candidate", "is_prime", "tested_at"}).
		AddRow("3f1c0c1e-0000-0000-0000-000000000002", 1000000007, true, now).
		AddRow("3f1c0c1e-0000-0000-0000-000000000001", 561, false, now.Add(-time.Minute))

	expectedSQL := "SELECT id, candidate, is_prime, tested_at FROM prime_verdicts ORDER BY tested_at DESC LIMIT ?"

	mock.ExpectQuery(regexp.QuoteMeta(expectedSQL)).
		WithArgs(2).
		WillReturnRows(rows)

	s := NewVerdictStoreWithDB(db)

	records, err := s.Recent(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int64(1000000007), records[0].Candidate)
	assert.False(t, records[1].IsPrime)

	assert.NoError(t, mock.ExpectationsWereMet())
}
