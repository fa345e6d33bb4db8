// Package runtime wires the inbox scanner, the caption workers and the health monitor
// under one supervisor. It holds no captioning rules of its own.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"autocaption/contract"
	"autocaption/domain"
	"autocaption/infrastructure/storage"
	"autocaption/runtime/workers"
)

// Settings are the runtime knobs read from the configuration.
type Settings struct {
	InboxDir        string
	NumberOfWorkers int
	BatchSize       int
	ScanInterval    time.Duration
	SettleAge       time.Duration
	PollInterval    time.Duration
	MetricInterval  time.Duration
}

type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	supervisor contract.ISupervisor
	tasks      storage.ITaskRepository
	service    contract.ICaptionService
	sinks      []contract.CaptionSink
	counter    *domain.CaptionCounter
	settings   Settings
}

func NewOrchestrator(
	log *slog.Logger,
	supervisor contract.ISupervisor,
	tasks storage.ITaskRepository,
	service contract.ICaptionService,
	counter *domain.CaptionCounter,
	settings Settings,
) *Orchestrator {
	return &Orchestrator{
		log:        log,
		supervisor: supervisor,
		tasks:      tasks,
		service:    service,
		counter:    counter,
		settings:   settings,
	}
}

func (o *Orchestrator) RegisterSinks(sinks ...contract.CaptionSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sinks = append(o.sinks, sinks...)
}

// Start requeues work interrupted by a previous run, registers every worker
// and blocks until the supervisor stops.
func (o *Orchestrator) Start(ctx context.Context) error {
	requeued, err := o.tasks.RequeueProcessing()
	if err != nil {
		return fmt.Errorf("failed to requeue interrupted tasks: %w", err)
	}
	if requeued > 0 {
		o.log.Info(fmt.Sprintf("%d interrupted tasks requeued", requeued))
	}

	o.mu.Lock()
	sinks := append([]contract.CaptionSink(nil), o.sinks...)
	o.supervisor.Add(workers.NewInboxScannerWorker(
		o.log,
		o.settings.InboxDir,
		o.tasks,
		o.counter,
		o.settings.ScanInterval,
		o.settings.SettleAge,
	))
	for i := 0; i < max(o.settings.NumberOfWorkers, 1); i++ {
		o.supervisor.Add(workers.NewCaptionWorker(
			o.log.With("worker", i),
			o.tasks,
			o.service,
			sinks,
			o.counter,
			o.settings.BatchSize,
			o.settings.PollInterval,
		))
	}
	if o.settings.MetricInterval > 0 {
		o.supervisor.Add(workers.NewHealthMonitoringWorker(o.log, o.counter, o.settings.MetricInterval, nil))
	}
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers",
		"inbox", o.settings.InboxDir,
		"caption_workers", max(o.settings.NumberOfWorkers, 1),
		"sinks", len(sinks))
	o.supervisor.Run(ctx)
	return nil
}

// Stop cancels every supervised worker.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
