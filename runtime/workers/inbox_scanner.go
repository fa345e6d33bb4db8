package workers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"autocaption/domain"
	"autocaption/domain/mimetypes"
	"autocaption/infrastructure/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const defaultScanInterval = 5 * time.Second

// InboxScannerWorker polls the inbox directory and enqueues every settled media file once.
// The layout is <inbox>/<channelID>/<file> for single posts and
// <inbox>/<channelID>/<groupID>/<file> for albums.
type InboxScannerWorker struct {
	log          *slog.Logger
	inboxDir     string
	tasks        storage.ITaskRepository
	counter      *domain.CaptionCounter
	scanInterval time.Duration
	settleAge    time.Duration
	now          func() time.Time
}

func NewInboxScannerWorker(
	log *slog.Logger,
	inboxDir string,
	tasks storage.ITaskRepository,
	counter *domain.CaptionCounter,
	scanInterval time.Duration,
	settleAge time.Duration,
) *InboxScannerWorker {
	if scanInterval <= 0 {
		scanInterval = defaultScanInterval
	}
	return &InboxScannerWorker{
		log:          log,
		inboxDir:     inboxDir,
		tasks:        tasks,
		counter:      counter,
		scanInterval: scanInterval,
		settleAge:    settleAge,
		now:          time.Now,
	}
}

func (w *InboxScannerWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()
	for {
		if err := w.ScanOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping inbox scanner")
			return nil
		case <-ticker.C:
		}
	}
}

// ScanOnce walks the inbox a single time. Only a missing or unreadable inbox is an error,
// problems with single entries are logged and skipped.
func (w *InboxScannerWorker) ScanOnce(ctx context.Context) error {
	channels, err := os.ReadDir(w.inboxDir)
	if err != nil {
		return err
	}
	for _, entry := range channels {
		if ctx.Err() != nil {
			return nil
		}
		if !entry.IsDir() {
			continue
		}
		channelDir := filepath.Join(w.inboxDir, entry.Name())
		channelID, ok := parseChannelDir(channelDir)
		if !ok {
			w.log.Debug("Ignoring directory, not a channel id", "path", channelDir)
			continue
		}
		w.scanDir(ctx, channelDir, domain.ChannelID(channelID), "")
	}
	return nil
}

func (w *InboxScannerWorker) scanDir(ctx context.Context, dir string, channelID domain.ChannelID, groupID string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Debug("Permission denied or path error", "path", dir, "error", err)
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		fullPath := filepath.Join(dir, entry.Name())
		switch {
		case entry.Type()&os.ModeSymlink != 0:
			continue
		case entry.IsDir():
			// Albums are one level deep only.
			if groupID == "" {
				w.scanDir(ctx, fullPath, channelID, entry.Name())
			}
		case entry.Type().IsRegular() && !ignoredName(entry.Name()):
			w.processFile(fullPath, entry, channelID, groupID)
		}
	}
}

func (w *InboxScannerWorker) processFile(path string, entry os.DirEntry, channelID domain.ChannelID, groupID string) {
	info, err := entry.Info()
	if err != nil {
		return
	}
	// A file still being written keeps moving its modification time.
	if w.now().Sub(info.ModTime()) < w.settleAge {
		return
	}
	known, err := w.tasks.IsKnown(path)
	if err != nil {
		w.log.Error("Unable to check inbox file", "path", path, "error", err)
		return
	}
	if known {
		return
	}

	mimeType := string(mimetypes.OctetStream)
	if detected, err := mimetype.DetectFile(path); err == nil {
		mimeType = string(mimetypes.ToMIME(detected.String()))
	}

	task := storage.CaptionTask{
		ID:        uuid.NewString(),
		Path:      path,
		ChannelID: channelID,
		GroupID:   groupID,
		MimeType:  mimeType,
		Size:      info.Size(),
		CreatedAt: w.now(),
	}
	if err := w.tasks.EnqueueTask(task); err != nil {
		w.log.Error("Unable to enqueue inbox file", "path", path, "error", err)
		return
	}
	w.counter.IncrFilesQueued()
	w.log.Debug("Inbox file queued", "path", path, "channel", channelID, "group", groupID, "mime", mimeType)
}
