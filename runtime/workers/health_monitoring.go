package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"autocaption/domain"

	"github.com/shirou/gopsutil/process"
)

// HealthReport is one sample of the daemon's own resource usage and progress.
type HealthReport struct {
	RSSBytes   uint64
	CPUPercent float64
	Goroutines int
	Counters   domain.CaptionCounter
}

// HealthMonitoringWorker logs a HealthReport every metricInterval.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	counter        *domain.CaptionCounter
	metricInterval time.Duration
	reports        chan<- HealthReport
}

// NewHealthMonitoringWorker accepts a nil reports channel when only logs are wanted.
func NewHealthMonitoringWorker(
	log *slog.Logger,
	counter *domain.CaptionCounter,
	metricInterval time.Duration,
	reports chan<- HealthReport,
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		counter:        counter,
		metricInterval: metricInterval,
		reports:        reports,
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health reports")
			return nil
		case <-ticker.C:
			report := w.sample(proc)
			w.log.Info("Health",
				"rss_mb", report.RSSBytes/1024/1024,
				"cpu", report.CPUPercent,
				"goroutines", report.Goroutines,
				"queued", report.Counters.FilesQueued,
				"captioned", report.Counters.Captioned,
				"fallbacks", report.Counters.Fallbacks,
				"skipped", report.Counters.Skipped,
				"sink_failures", report.Counters.SinkFailures)
			if w.reports == nil {
				continue
			}
			select {
			case w.reports <- report:
			default:
				w.log.Debug("Health report dropped")
			}
		}
	}
}

func (w *HealthMonitoringWorker) sample(proc *process.Process) HealthReport {
	report := HealthReport{
		Goroutines: runtime.NumGoroutine(),
		Counters:   w.counter.Snapshot(),
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		report.RSSBytes = mem.RSS
	} else {
		w.log.Debug("Error while finding process ram usage", "err", err)
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		report.CPUPercent = cpu
	} else {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	}
	return report
}
