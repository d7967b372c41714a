package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	for _, table := range []string{"session_state", "session_completed_steps", "session_timers"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenDBCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "souschef.db")
	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	assert.FileExists(t, path)
}

func TestScaleFactorCheckConstraint(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO session_state (id, scale_factor, updated_at) VALUES (1, 9.0, 'x')`)
	assert.Error(t, err)
}

func TestWithinTxRollsBack(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err = WithinTx(ctx, database, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO session_state (id, updated_at) VALUES (1, 'x')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM session_state`).Scan(&n))
	assert.Zero(t, n)

	err = WithinTx(ctx, database, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO session_state (id, updated_at) VALUES (1, 'x')`)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM session_state`).Scan(&n))
	assert.Equal(t, 1, n)
}
