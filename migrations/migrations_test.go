package migrations

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Sorted(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestInitSchema_HasOverlapConstraint(t *testing.T) {
	body, err := migrationFiles.ReadFile("001_init.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "CONSTRAINT orders_no_overlap EXCLUDE USING gist")
	assert.Contains(t, sql, "tstzrange(scheduled_start, scheduled_end, '[)') WITH &&")
	assert.Contains(t, sql, "WHERE (status <> 'cancelled')")
	assert.Contains(t, sql, "UNIQUE (phone_number)")
}

func expectPrologue(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_lock($1)`)).
		WithArgs(advisoryLockID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectUnlock(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_unlock($1)`)).
		WithArgs(advisoryLockID).WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestApply_RunsPendingMigration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPrologue(mock)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("001_init.sql").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectUnlock(mock)

	applied, err := Apply(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_SkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPrologue(mock)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	expectUnlock(mock)

	applied, err := Apply(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_RollsBackFailedMigration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPrologue(mock)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE EXTENSION`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()
	expectUnlock(mock)

	_, err = Apply(context.Background(), db)
	assert.ErrorContains(t, err, "exec migration 001_init.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
