package runtime_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autocaption/contract"
	"autocaption/domain"
	"autocaption/infrastructure/storage"
	"autocaption/mocks"
	"autocaption/runtime"
	"autocaption/runtime/workers"
	"autocaption/services"
	"autocaption/sink"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator_CaptionsInboxFiles(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)
	defer db.Close()

	inbox := t.TempDir()
	media := filepath.Join(inbox, "-1001", "Movie.Title.2020.1080p.mkv")
	req.NoError(os.MkdirAll(filepath.Dir(media), 0o755))
	req.NoError(os.WriteFile(media, []byte("not really a movie"), 0o644))

	templates := storage.NewTemplateRepository(db, log)
	_, err = templates.Set(-1001, "{{clean_title}} ({{year}}) {{quality}}", time.Now())
	req.NoError(err)

	tasks := storage.NewTaskRepository(db, log)
	counter := domain.NewCaptionCounter()
	service := services.NewCaptionService(log, templates, nil, services.CaptionSettings{MaxCaptionLength: 1024})
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 0), tasks, service, counter, runtime.Settings{
		InboxDir:        inbox,
		NumberOfWorkers: 2,
		BatchSize:       4,
		ScanInterval:    20 * time.Millisecond,
		PollInterval:    10 * time.Millisecond,
	})
	orchestrator.RegisterSinks(sink.NewSidecarSink(log), sink.NewLogSink(log))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- orchestrator.Start(ctx) }()

	req.Eventually(func() bool {
		_, err := os.Stat(sink.SidecarPath(media))
		return err == nil
	}, 4*time.Second, 20*time.Millisecond)

	orchestrator.Stop()
	req.NoError(<-done)

	data, err := os.ReadFile(sink.SidecarPath(media))
	req.NoError(err)
	req.Equal("Movie Title (2020) 1080p", string(data))
	req.EqualValues(1, counter.Snapshot().Captioned)
}

func TestOrchestrator_RequeueFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	tasks := mocks.NewMockITaskRepository(ctrl)
	supervisor := mocks.NewMockISupervisor(ctrl)

	tasks.EXPECT().RequeueProcessing().Return(0, errors.New("db closed"))

	orchestrator := runtime.NewOrchestrator(slog.Default(), supervisor, tasks, mocks.NewMockICaptionService(ctrl),
		domain.NewCaptionCounter(), runtime.Settings{})

	req.Error(orchestrator.Start(context.Background()))
}

func TestOrchestrator_RegistersWorkers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	tasks := mocks.NewMockITaskRepository(ctrl)
	supervisor := mocks.NewMockISupervisor(ctrl)

	var registered []contract.Worker
	tasks.EXPECT().RequeueProcessing().Return(0, nil)
	supervisor.EXPECT().Add(gomock.Any()).DoAndReturn(func(w ...contract.Worker) contract.ISupervisor {
		registered = append(registered, w...)
		return supervisor
	}).Times(4)
	supervisor.EXPECT().Run(gomock.Any())

	orchestrator := runtime.NewOrchestrator(slog.Default(), supervisor, tasks, mocks.NewMockICaptionService(ctrl),
		domain.NewCaptionCounter(), runtime.Settings{NumberOfWorkers: 2, MetricInterval: time.Second})

	req.NoError(orchestrator.Start(context.Background()))
	names := make([]string, 0, len(registered))
	for _, w := range registered {
		names = append(names, contract.GetWorkerName(w))
	}
	req.Equal([]string{"InboxScannerWorker", "CaptionWorker", "CaptionWorker", "HealthMonitoringWorker"}, names)
}
