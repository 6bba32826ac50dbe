// Package relay implements the stateless media fan-out paths: the two UDP
// relays for video and audio, and the TCP screen-share relay.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"lan-collab/domain"
	"lan-collab/observability"
	"lan-collab/protocol"
)

type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// endpoint is the last address seen for a uid. Entries are overwritten on
// every packet and never pruned: once the owner is gone nothing sends to
// them anymore, so stale entries only cost a map slot.
type endpoint struct {
	addr     *net.UDPAddr
	lastSeen time.Time
}

// MediaRelay re-broadcasts opaque datagrams between UDP clients,
// correlated only by the uid embedded in the packet header. No ack, no
// retransmission, no reordering: loss is the consumer's problem.
type MediaRelay struct {
	log     *slog.Logger
	kind    MediaKind
	host    string
	port    int
	monitor *observability.Monitor

	mu        sync.Mutex
	endpoints map[domain.UID]endpoint

	conn *net.UDPConn
}

func NewMediaRelay(log *slog.Logger, kind MediaKind, host string, port int, monitor *observability.Monitor) *MediaRelay {
	return &MediaRelay{
		log:       log,
		kind:      kind,
		host:      host,
		port:      port,
		monitor:   monitor,
		endpoints: make(map[domain.UID]endpoint),
	}
}

// Listen binds the UDP socket. Split from Run so callers can learn the
// bound port before traffic starts.
func (r *MediaRelay) Listen() error {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{
		IP:   net.ParseIP(r.host),
		Port: r.port,
	})
	if err != nil {
		return fmt.Errorf("%s relay listen: %w", r.kind, err)
	}
	r.conn = conn
	return nil
}

func (r *MediaRelay) Port() int {
	if r.conn == nil {
		return r.port
	}
	return r.conn.LocalAddr().(*net.UDPAddr).Port
}

func (r *MediaRelay) Run(ctx context.Context) error {
	if r.conn == nil {
		if err := r.Listen(); err != nil {
			return err
		}
	}
	r.log.Info("Media relay listening", "kind", r.kind, "addr", r.conn.LocalAddr())

	go func() {
		<-ctx.Done()
		_ = r.conn.Close()
	}()

	buf := make([]byte, 65536)
	for {
		n, src, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		r.handlePacket(buf[:n], src)
	}
}

// handlePacket validates the header, refreshes the sender's endpoint, and
// fans the original datagram out to every other known endpoint.
func (r *MediaRelay) handlePacket(packet []byte, src *net.UDPAddr) {
	uid, err := r.senderUID(packet)
	if err != nil {
		// Malformed packets are dropped without a reply.
		return
	}

	r.mu.Lock()
	r.endpoints[uid] = endpoint{addr: src, lastSeen: time.Now()}
	targets := make([]*net.UDPAddr, 0, len(r.endpoints))
	for id, ep := range r.endpoints {
		if id != uid {
			targets = append(targets, ep.addr)
		}
	}
	r.mu.Unlock()

	switch r.kind {
	case KindVideo:
		r.monitor.IncrVideoPackets()
	case KindAudio:
		r.monitor.IncrAudioPackets()
	}

	// A failed send to one recipient must not starve the others.
	for _, addr := range targets {
		_, _ = r.conn.WriteToUDP(packet, addr)
	}
}

func (r *MediaRelay) senderUID(packet []byte) (domain.UID, error) {
	switch r.kind {
	case KindVideo:
		p, err := protocol.DecodeVideoPacket(packet)
		return p.UID, err
	default:
		p, err := protocol.DecodeAudioPacket(packet)
		return p.UID, err
	}
}

// Endpoints reports how many uids the relay currently knows about.
func (r *MediaRelay) Endpoints() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.endpoints)
}
