// Package observability aggregates relay counters for the periodic stats
// report. All counters are atomic; reading them never blocks a relay path.
package observability

import (
	"sync/atomic"
	"time"
)

type Monitor struct {
	StartTime time.Time

	totalConnections uint64
	messagesRelayed  uint64
	videoPackets     uint64
	audioPackets     uint64
	screenFrames     uint64
	filesStored      uint64
	bytesUploaded    uint64
	bytesDownloaded  uint64
}

func NewMonitor() *Monitor {
	return &Monitor{StartTime: time.Now()}
}

func (m *Monitor) IncrConnections()     { atomic.AddUint64(&m.totalConnections, 1) }
func (m *Monitor) IncrMessagesRelayed() { atomic.AddUint64(&m.messagesRelayed, 1) }
func (m *Monitor) IncrVideoPackets()    { atomic.AddUint64(&m.videoPackets, 1) }
func (m *Monitor) IncrAudioPackets()    { atomic.AddUint64(&m.audioPackets, 1) }
func (m *Monitor) IncrScreenFrames()    { atomic.AddUint64(&m.screenFrames, 1) }
func (m *Monitor) IncrFilesStored()     { atomic.AddUint64(&m.filesStored, 1) }

func (m *Monitor) AddBytesUploaded(n uint64)   { atomic.AddUint64(&m.bytesUploaded, n) }
func (m *Monitor) AddBytesDownloaded(n uint64) { atomic.AddUint64(&m.bytesDownloaded, n) }

// Stats is a point-in-time copy of all counters.
type Stats struct {
	Uptime           time.Duration
	TotalConnections uint64
	MessagesRelayed  uint64
	VideoPackets     uint64
	AudioPackets     uint64
	ScreenFrames     uint64
	FilesStored      uint64
	BytesUploaded    uint64
	BytesDownloaded  uint64
}

func (m *Monitor) Snapshot() Stats {
	return Stats{
		Uptime:           time.Since(m.StartTime),
		TotalConnections: atomic.LoadUint64(&m.totalConnections),
		MessagesRelayed:  atomic.LoadUint64(&m.messagesRelayed),
		VideoPackets:     atomic.LoadUint64(&m.videoPackets),
		AudioPackets:     atomic.LoadUint64(&m.audioPackets),
		ScreenFrames:     atomic.LoadUint64(&m.screenFrames),
		FilesStored:      atomic.LoadUint64(&m.filesStored),
		BytesUploaded:    atomic.LoadUint64(&m.bytesUploaded),
		BytesDownloaded:  atomic.LoadUint64(&m.bytesDownloaded),
	}
}
