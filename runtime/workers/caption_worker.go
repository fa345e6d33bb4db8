package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"autocaption/contract"
	"autocaption/domain"
	caperrors "autocaption/errors"
	"autocaption/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const defaultPollInterval = time.Second

// CaptionWorker drains the task queue: it claims a task, captions it and hands the
// result to every sink. Several workers can share one queue.
type CaptionWorker struct {
	log          *slog.Logger
	tasks        storage.ITaskRepository
	service      contract.ICaptionService
	sinks        []contract.CaptionSink
	counter      *domain.CaptionCounter
	batchSize    int
	pollInterval time.Duration
}

func NewCaptionWorker(
	log *slog.Logger,
	tasks storage.ITaskRepository,
	service contract.ICaptionService,
	sinks []contract.CaptionSink,
	counter *domain.CaptionCounter,
	batchSize int,
	pollInterval time.Duration,
) *CaptionWorker {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &CaptionWorker{
		log:          log,
		tasks:        tasks,
		service:      service,
		sinks:        sinks,
		counter:      counter,
		batchSize:    max(batchSize, 1),
		pollInterval: pollInterval,
	}
}

func (w *CaptionWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		batch, err := w.tasks.GetNextBatch(w.batchSize)
		if err != nil {
			return err
		}
		for _, task := range batch {
			if ctx.Err() != nil {
				return nil
			}
			w.handle(ctx, task)
		}
		if len(batch) > 0 {
			continue
		}
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping caption worker")
			return nil
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *CaptionWorker) handle(ctx context.Context, task storage.CaptionTask) {
	if err := w.tasks.MarkAsProcessing(task); err != nil {
		// Claimed by another worker.
		w.log.Debug("Task not claimed", "id", task.ID, "error", err)
		return
	}

	evt, err := w.toEvent(task)
	if err != nil {
		w.log.Warn("Unreadable inbox metadata, using the file alone", "path", task.Path, "error", err)
	}

	edit, ok, err := w.service.Caption(ctx, evt)
	switch {
	case ok:
		if evt.InGroup() {
			w.log.Debug("Album item captioned", "group", evt.GroupID, "path", task.Path)
		}
		w.deliver(ctx, edit)
	case errors.Is(err, caperrors.ErrNoMedia), errors.Is(err, caperrors.ErrInvalidEvent):
		w.counter.IncrSkipped()
		w.log.Warn("Inbox file rejected", "path", task.Path, "error", err)
	default:
		w.counter.IncrSkipped()
		w.log.Info("Inbox file left without caption", "path", task.Path, "error", err)
	}

	if err := w.tasks.MarkDone(task, time.Now()); err != nil {
		w.log.Error("Unable to complete task", "id", task.ID, "error", err)
	}
}

func (w *CaptionWorker) deliver(ctx context.Context, edit domain.CaptionEdit) {
	w.counter.IncrCaptioned()
	if edit.Fallback {
		w.counter.IncrFallbacks()
	}
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, edit); err != nil {
			w.counter.IncrSinkFailures()
			w.log.Error("Sink failed", "sink", fmt.Sprintf("%T", sink), "path", edit.Path, "error", err)
		}
	}
}

// toEvent always returns a usable event, the error only reports a broken meta file.
func (w *CaptionWorker) toEvent(task storage.CaptionTask) (domain.MediaEvent, error) {
	meta, err := loadMeta(task.Path)
	id, parseErr := uuid.Parse(task.ID)
	if parseErr != nil {
		id = uuid.New()
	}
	return domain.MediaEvent{
		ID:        id,
		ChannelID: task.ChannelID,
		MessageID: domain.MessageID(meta.MessageID),
		GroupID:   task.GroupID,
		File: domain.RawFile{
			Filename:        lo.CoalesceOrEmpty(meta.FileName, filepath.Base(task.Path)),
			Path:            task.Path,
			SizeBytes:       lo.CoalesceOrEmpty(lo.FromPtr(meta.Size), task.Size),
			MimeType:        lo.CoalesceOrEmpty(meta.MimeType, task.MimeType),
			DurationSeconds: meta.Duration,
			Width:           meta.Width,
			Height:          meta.Height,
			EmbeddedTitle:   meta.Title,
			EmbeddedArtist:  meta.Performer,
		},
		ExistingCaption: meta.Caption,
		ReceivedAt:      task.CreatedAt,
	}, err
}
