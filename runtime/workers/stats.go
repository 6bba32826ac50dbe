package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/process"

	"lan-collab/observability"
	"lan-collab/runtime"
)

// StatsWorker periodically prints server statistics: relay counters, the
// participant table, and the server's own CPU/RSS usage.
type StatsWorker struct {
	log      *slog.Logger
	registry *runtime.Registry
	monitor  *observability.Monitor
	interval time.Duration
}

func NewStatsWorker(
	log *slog.Logger,
	registry *runtime.Registry,
	monitor *observability.Monitor,
	interval time.Duration,
) *StatsWorker {
	return &StatsWorker{
		log:      log,
		registry: registry,
		monitor:  monitor,
		interval: interval,
	}
}

func (w *StatsWorker) Run(ctx context.Context) error {
	w.log.Info("Starting stats reporter", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.report(p)
		}
	}
}

func (w *StatsWorker) report(p *process.Process) {
	stats := w.monitor.Snapshot()

	fields := []any{
		"uptime", stats.Uptime.Round(time.Second),
		"participants", w.registry.Count(),
		"total_connections", stats.TotalConnections,
		"messages_relayed", stats.MessagesRelayed,
		"video_packets", stats.VideoPackets,
		"audio_packets", stats.AudioPackets,
		"screen_frames", stats.ScreenFrames,
		"files_stored", stats.FilesStored,
		"uploaded", humanize.Bytes(stats.BytesUploaded),
		"downloaded", humanize.Bytes(stats.BytesDownloaded),
	}

	if rss, cpu, err := selfStats(p); err == nil {
		fields = append(fields,
			"rss", humanize.Bytes(rss),
			"cpu_percent", fmt.Sprintf("%.1f", cpu))
	}

	w.log.Info("Server statistics", fields...)
	w.printParticipants()
}

func (w *StatsWorker) printParticipants() {
	participants := w.registry.Snapshot()
	if len(participants) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"UID", "Username", "Presenting", "Joined"})
	for _, p := range participants {
		table.Append([]string{
			strconv.FormatUint(uint64(p.UID), 10),
			p.Username,
			strconv.FormatBool(p.IsPresenting),
			p.JoinTime.Format(time.TimeOnly),
		})
	}
	table.Render()
}

// selfStats retrieves memory and CPU usage for the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
