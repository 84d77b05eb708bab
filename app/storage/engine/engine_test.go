package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSqlite(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		db, err := NewSqlite(":memory:")
		require.NoError(t, err)
		defer db.Close()
		assert.Equal(t, Sqlite, db.Type())
		require.NoError(t, db.Ping())
	})

	t.Run("file based", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "test.db")
		db, err := NewSqlite(file)
		require.NoError(t, err)
		defer db.Close()
		assert.Equal(t, Sqlite, db.Type())

		var mode string
		require.NoError(t, db.Get(&mode, "PRAGMA journal_mode"))
		assert.Equal(t, "wal", mode)
	})

	t.Run("bad path", func(t *testing.T) {
		_, err := NewSqlite("/dev/null/not-a-dir/test.db")
		assert.Error(t, err)
	})
}

func TestInitDB(t *testing.T) {
	ctx := context.Background()
	schema := `CREATE TABLE IF NOT EXISTS test_table (id INTEGER PRIMARY KEY, name TEXT)`

	t.Run("creates table", func(t *testing.T) {
		db, err := NewSqlite(":memory:")
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, InitDB(ctx, db, "test_table", schema))

		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM test_table"))
		assert.Equal(t, 0, count)
	})

	t.Run("idempotent", func(t *testing.T) {
		db, err := NewSqlite(":memory:")
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, InitDB(ctx, db, "test_table", schema))
		_, err = db.Exec("INSERT INTO test_table (name) VALUES ('keep me')")
		require.NoError(t, err)

		// second init must not recreate the table
		require.NoError(t, InitDB(ctx, db, "test_table", schema))

		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM test_table"))
		assert.Equal(t, 1, count)
	})

	t.Run("nil db", func(t *testing.T) {
		assert.Error(t, InitDB(ctx, nil, "test_table", schema))
	})

	t.Run("broken schema", func(t *testing.T) {
		db, err := NewSqlite(":memory:")
		require.NoError(t, err)
		defer db.Close()
		assert.Error(t, InitDB(ctx, db, "bad_table", "CREATE TABLE bad_table ("))
	})
}
