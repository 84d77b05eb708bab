package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLocker(t *testing.T) {
	var l NoopLocker

	// nested calls in any order never block
	l.Lock()
	l.RLock()
	l.RLock()
	l.RUnlock()
	l.Lock()
	l.Unlock()
	l.RUnlock()
	l.Unlock()
}

func TestSQL_MakeLock(t *testing.T) {
	t.Run("sqlite uses mutex", func(t *testing.T) {
		db, err := NewSqlite(":memory:")
		require.NoError(t, err)
		defer db.Close()

		locker := db.MakeLock()
		_, ok := locker.(*sync.RWMutex)
		assert.True(t, ok, "sqlite serializes writers with a real lock")
	})

	t.Run("unknown type uses noop", func(t *testing.T) {
		e := &SQL{dbType: Unknown}
		locker := e.MakeLock()
		_, ok := locker.(*NoopLocker)
		assert.True(t, ok)
	})
}
