package workers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autocaption/domain"
	"autocaption/infrastructure/storage"
	"autocaption/sink"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeFile(t *testing.T, path string, content string, modTime time.Time) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestInboxScanner_QueuesSettledFilesOnce(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	inbox := t.TempDir()
	old := time.Now().Add(-time.Hour)

	writeFile(t, filepath.Join(inbox, "-1001", "Movie.2020.mkv"), "data", old)
	writeFile(t, filepath.Join(inbox, "-1001", "album-7", "a.jpg"), "data", old)
	writeFile(t, filepath.Join(inbox, "-1001", "fresh.mp4"), "data", time.Now())
	writeFile(t, filepath.Join(inbox, "-1001", "Movie.2020.mkv"+sink.SidecarSuffix), "done", old)
	writeFile(t, filepath.Join(inbox, "-1001", ".hidden"), "x", old)
	writeFile(t, filepath.Join(inbox, "not-a-channel", "x.mkv"), "data", old)

	tasks := storage.NewTaskRepository(openTestDB(t), log)
	counter := domain.NewCaptionCounter()
	scanner := NewInboxScannerWorker(log, inbox, tasks, counter, time.Second, time.Minute)

	req.NoError(scanner.ScanOnce(context.Background()))
	req.NoError(scanner.ScanOnce(context.Background()))

	batch, err := tasks.GetNextBatch(10)
	req.NoError(err)
	req.Len(batch, 2)
	req.EqualValues(2, counter.Snapshot().FilesQueued)

	byName := make(map[string]storage.CaptionTask)
	for _, task := range batch {
		byName[filepath.Base(task.Path)] = task
		req.EqualValues(-1001, task.ChannelID)
	}
	req.Contains(byName, "Movie.2020.mkv")
	req.Contains(byName, "a.jpg")
	req.Empty(byName["Movie.2020.mkv"].GroupID)
	req.Equal("album-7", byName["a.jpg"].GroupID)
}

func TestInboxScanner_MissingInbox(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	tasks := storage.NewTaskRepository(openTestDB(t), log)
	scanner := NewInboxScannerWorker(log, filepath.Join(t.TempDir(), "missing"), tasks, domain.NewCaptionCounter(), time.Second, 0)

	require.Error(t, scanner.ScanOnce(context.Background()))
}

func TestIgnoredName(t *testing.T) {
	req := require.New(t)
	req.True(ignoredName(".DS_Store"))
	req.True(ignoredName("movie.mkv.part"))
	req.True(ignoredName("movie.mkv" + MetaSuffix))
	req.True(ignoredName("movie.mkv" + sink.SidecarSuffix))
	req.False(ignoredName("movie.mkv"))
}

func TestLoadMeta(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	media := filepath.Join(dir, "song.mp3")

	meta, err := loadMeta(media)
	req.NoError(err)
	req.Zero(meta.MessageID)

	writeFile(t, media+MetaSuffix, `{"message_id": 12, "caption": "hello", "performer": "Band", "duration": 61.5, "size": 2048}`, time.Now())
	meta, err = loadMeta(media)
	req.NoError(err)
	req.EqualValues(12, meta.MessageID)
	req.Equal("hello", meta.Caption)
	req.Equal("Band", *meta.Performer)
	req.Equal(61.5, *meta.Duration)
	req.EqualValues(2048, *meta.Size)

	writeFile(t, media+MetaSuffix, `{broken`, time.Now())
	_, err = loadMeta(media)
	req.Error(err)
}
