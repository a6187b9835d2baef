package sqlite

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB(t *testing.T) {
	t.Run("migrates in-memory database", func(t *testing.T) {
		db, err := NewDB(context.Background(), Settings{DbPath: ":memory:"})
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		version, err := schemaVersion(db)
		require.NoError(t, err)
		assert.Equal(t, latestVersion(), version)

		// Re-running is a no-op.
		require.NoError(t, migrate(context.Background(), db))
	})

	t.Run("logs migrations to the context logger", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())

		db, err := NewDB(ctx, Settings{DbPath: ":memory:"})
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		assert.Contains(t, buf.String(), `"message":"applying migration"`)
		assert.Contains(t, buf.String(), `"version":2`)
	})

	t.Run("empty path", func(t *testing.T) {
		db, err := NewDB(context.Background(), Settings{})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("file database survives reopen", func(t *testing.T) {
		path := t.TempDir() + "/isg.db"
		db, err := NewDB(context.Background(), Settings{DbPath: path})
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = NewDB(context.Background(), Settings{DbPath: path})
		require.NoError(t, err)
		defer db.Close()
		version, err := schemaVersion(db)
		require.NoError(t, err)
		assert.Equal(t, latestVersion(), version)
	})
}

func TestWithinTx(t *testing.T) {
	db, err := NewDB(context.Background(), Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	insert := func(ctx context.Context, id string) error {
		_, err := Conn(ctx, db).ExecContext(ctx,
			`INSERT INTO indicators (id, name, category, year, month, target, created_at, updated_at)
			VALUES (?, 'n', ?, 2024, 1, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`, id, id)
		return err
	}
	count := func() int {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM indicators`).Scan(&n))
		return n
	}

	t.Run("rollback on error", func(t *testing.T) {
		errBoom := errors.New("boom")
		err := WithinTx(ctx, db, func(ctx context.Context) error {
			assert.NotNil(t, GetTransaction(ctx))
			require.NoError(t, insert(ctx, "a"))
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, count())
	})

	t.Run("commit and nested reuse", func(t *testing.T) {
		err := WithinTx(ctx, db, func(ctx context.Context) error {
			outer := GetTransaction(ctx)
			if err := insert(ctx, "b"); err != nil {
				return err
			}
			return WithinTx(ctx, db, func(ctx context.Context) error {
				assert.Same(t, outer, GetTransaction(ctx))
				return insert(ctx, "c")
			})
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count())
	})
}
