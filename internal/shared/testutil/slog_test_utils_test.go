package testutil

import (
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("keeps attributes added with With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("scan_id", "abc")).Info("scanned", slog.Int("files", 2))

		records := handler.GetRecords()
		require.Len(t, records, 1)
		assert.Equal(t, "abc", records[0].Attrs["scan_id"])
		assert.Equal(t, int64(2), records[0].Attrs["files"])
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelDebug), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("message 1")
		logger.Info("message 2")
		assert.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})

	t.Run("concurrent logging", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("concurrent log", slog.Int("goroutine", n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestDataTree(t *testing.T) {
	tree := NewDataTree(t)

	path := tree.Write("raw/nested/a.csv", "x,y\n")
	assert.FileExists(t, path)

	sized := tree.WriteSized("processed/b.bin", 2048)
	info, err := os.Stat(sized)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), info.Size())

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tree.Touch("processed/b.bin", when)
	info, err = os.Stat(sized)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(when))

	tree.Mkdir("interim")
	assert.DirExists(t, tree.Path("interim"))
}
