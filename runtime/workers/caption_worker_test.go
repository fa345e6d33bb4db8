package workers

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"autocaption/contract"
	"autocaption/domain"
	caperrors "autocaption/errors"
	"autocaption/infrastructure/storage"
	"autocaption/mocks"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCaptionTask(dir string) storage.CaptionTask {
	return storage.CaptionTask{
		ID:        uuid.NewString(),
		Path:      filepath.Join(dir, "-1001", "clip.mp4"),
		ChannelID: -1001,
		MimeType:  "video/mp4",
		Size:      1536,
		CreatedAt: time.Now(),
	}
}

func TestCaptionWorker_DeliversToEverySink(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	tasks := mocks.NewMockITaskRepository(ctrl)
	service := mocks.NewMockICaptionService(ctrl)
	sinkA := mocks.NewMockCaptionSink(ctrl)
	sinkB := mocks.NewMockCaptionSink(ctrl)
	counter := domain.NewCaptionCounter()
	task := newCaptionTask(t.TempDir())
	edit := domain.CaptionEdit{ChannelID: -1001, Path: task.Path, Caption: "clip.mp4", Fallback: true}

	tasks.EXPECT().GetNextBatch(4).Return([]storage.CaptionTask{task}, nil)
	tasks.EXPECT().MarkAsProcessing(task).Return(nil)
	service.EXPECT().Caption(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, evt domain.MediaEvent) (domain.CaptionEdit, bool, error) {
			req.Equal("clip.mp4", evt.File.Filename)
			req.Equal(task.Path, evt.File.Path)
			req.EqualValues(1536, evt.File.SizeBytes)
			req.Equal(task.ID, evt.ID.String())
			return edit, true, nil
		})
	sinkA.EXPECT().Consume(gomock.Any(), edit).Return(nil)
	sinkB.EXPECT().Consume(gomock.Any(), edit).Return(errors.New("disk full"))
	tasks.EXPECT().MarkDone(task, gomock.Any()).Return(nil)
	tasks.EXPECT().GetNextBatch(4).DoAndReturn(func(int) ([]storage.CaptionTask, error) {
		cancel()
		return nil, nil
	})

	worker := NewCaptionWorker(log, tasks, service, []contract.CaptionSink{sinkA, sinkB}, counter, 4, time.Millisecond)
	req.NoError(worker.Run(ctx))

	snapshot := counter.Snapshot()
	req.EqualValues(1, snapshot.Captioned)
	req.EqualValues(1, snapshot.Fallbacks)
	req.EqualValues(1, snapshot.SinkFailures)
}

func TestCaptionWorker_SkippedTaskIsCompleted(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	tasks := mocks.NewMockITaskRepository(ctrl)
	service := mocks.NewMockICaptionService(ctrl)
	counter := domain.NewCaptionCounter()
	task := newCaptionTask(t.TempDir())

	tasks.EXPECT().GetNextBatch(1).Return([]storage.CaptionTask{task}, nil)
	tasks.EXPECT().MarkAsProcessing(task).Return(nil)
	service.EXPECT().Caption(gomock.Any(), gomock.Any()).Return(domain.CaptionEdit{}, false, caperrors.ErrNoMedia)
	tasks.EXPECT().MarkDone(task, gomock.Any()).DoAndReturn(func(storage.CaptionTask, time.Time) error {
		cancel()
		return nil
	})

	worker := NewCaptionWorker(log, tasks, service, nil, counter, 1, time.Millisecond)
	req.NoError(worker.Run(ctx))
	req.EqualValues(1, counter.Snapshot().Skipped)
}

func TestCaptionWorker_TaskClaimedElsewhere(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	tasks := mocks.NewMockITaskRepository(ctrl)
	service := mocks.NewMockICaptionService(ctrl)
	task := newCaptionTask(t.TempDir())

	tasks.EXPECT().GetNextBatch(1).Return([]storage.CaptionTask{task}, nil)
	tasks.EXPECT().MarkAsProcessing(task).DoAndReturn(func(storage.CaptionTask) error {
		cancel()
		return errors.New("task is no longer pending")
	})

	worker := NewCaptionWorker(log, tasks, service, nil, domain.NewCaptionCounter(), 1, time.Millisecond)
	req.NoError(worker.Run(ctx))
}

func TestCaptionWorker_QueueFailureStopsTheWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mocks.NewMockITaskRepository(ctrl)
	tasks.EXPECT().GetNextBatch(1).Return(nil, errors.New("db closed"))

	worker := NewCaptionWorker(slog.Default(), tasks, mocks.NewMockICaptionService(ctrl), nil, domain.NewCaptionCounter(), 1, 0)
	require.Error(t, worker.Run(context.Background()))
}

func TestCaptionWorker_EventFromTask(t *testing.T) {
	tests := []struct {
		description string
		groupID     string
		meta        string
		wantSize    int64
		wantName    string
		wantCaption string
	}{
		{
			description: "Should use the file alone without companion",
			wantSize:    1536,
			wantName:    "clip.mp4",
		},
		{
			description: "Should prefer the platform size and name of an album item",
			groupID:     "album-7",
			meta:        `{"message_id": 9, "file_name": "Movie.2020.mp4", "size": 2254857830, "caption": "old"}`,
			wantSize:    2254857830,
			wantName:    "Movie.2020.mp4",
			wantCaption: "old",
		},
		{
			description: "Should keep the file size when the companion has none",
			meta:        `{"message_id": 9}`,
			wantSize:    1536,
			wantName:    "clip.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			worker := NewCaptionWorker(logs.GetLoggerFromLevel(slog.LevelDebug), nil, nil, nil, domain.NewCaptionCounter(), 1, time.Millisecond)
			task := newCaptionTask(t.TempDir())
			task.GroupID = tt.groupID
			if tt.meta != "" {
				writeFile(t, task.Path+MetaSuffix, tt.meta, time.Now())
			}

			evt, err := worker.toEvent(task)

			req.NoError(err)
			req.Equal(tt.groupID != "", evt.InGroup())
			req.Equal(tt.wantSize, evt.File.SizeBytes)
			req.Equal(tt.wantName, evt.File.Filename)
			req.Equal(tt.wantCaption, evt.ExistingCaption)
		})
	}
}
