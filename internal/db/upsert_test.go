package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpsert_EmptyRows(t *testing.T) {
	n, err := BulkUpsert(nil, nil, UpsertConfig{
		Table:        "players",
		Columns:      []string{"club", "season", "first_name", "last_name"},
		ConflictKeys: []string{"club", "season", "first_name", "last_name"},
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsert_NoColumns(t *testing.T) {
	_, err := BulkUpsert(nil, nil, UpsertConfig{
		Table:        "players",
		ConflictKeys: []string{"club"},
	}, [][]any{{"Chicago Fire"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")
}

func TestBulkUpsert_NoConflictKeys(t *testing.T) {
	_, err := BulkUpsert(nil, nil, UpsertConfig{
		Table:   "players",
		Columns: []string{"club", "season"},
	}, [][]any{{"Chicago Fire", "2025"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys specified")
}

func TestBulkUpsert_RosterLoad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	columns := []string{"club", "season", "first_name", "last_name"}

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_players"}, columns).WillReturnResult(2)
	mock.ExpectExec("INSERT INTO").WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{
		{"Chicago Fire", "2025", "Christopher", "Cupps"},
		{"Chicago Fire", "2025", "Dylan", "Borso"},
	}
	n, err := BulkUpsert(context.Background(), mock, UpsertConfig{
		Table:        "players",
		Columns:      columns,
		ConflictKeys: columns,
	}, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteAndJoin(t *testing.T) {
	result := quoteAndJoin([]string{"club", "season", "first_name"})
	assert.Equal(t, `"club", "season", "first_name"`, result)
}
