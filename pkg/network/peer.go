package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cbodonnell/swipeduel/pkg/journal"
	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/queue"
)

// EventSender sends protocol events to the remote peer.
type EventSender interface {
	SendEvent(event messages.Event) error
}

// Peer is one end of the point-to-point event stream.
type Peer struct {
	conn         net.Conn
	inboundQueue queue.Queue[messages.Event]
	journal      journal.Recorder
	writeLock    sync.Mutex
	closed       atomic.Bool
}

type NewPeerOptions struct {
	Conn         net.Conn
	InboundQueue queue.Queue[messages.Event]
	// Journal is optional
	Journal journal.Recorder
}

func NewPeer(opts NewPeerOptions) *Peer {
	return &Peer{
		conn:         opts.Conn,
		inboundQueue: opts.InboundQueue,
		journal:      opts.Journal,
	}
}

// HandleEvents reads newline delimited events until the connection ends and
// enqueues every decoded event. Malformed events are logged and skipped.
// It always returns a non-nil error describing why the stream ended.
func (p *Peer) HandleEvents(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			p.Close()
		case <-stop:
		}
	}()

	reader := bufio.NewReaderSize(p.conn, messages.MessageBufferSize)
	for {
		line, err := reader.ReadString(messages.EventDelimiter)
		if err != nil {
			if p.closed.Load() || errors.Is(err, net.ErrClosed) {
				return &ErrConnectionClosedLocally{}
			}
			if errors.Is(err, io.EOF) {
				return &ErrConnectionClosedByPeer{}
			}
			return fmt.Errorf("failed to read event: %w", err)
		}

		literal := strings.TrimSpace(line)
		p.record(journal.DirectionReceived, literal)

		event, err := messages.DecodeEvent(literal)
		if err != nil {
			log.Warn("Discarding event from %s: %v", p.conn.RemoteAddr(), err)
			continue
		}
		log.Trace("Received event %s", event)

		if err := p.inboundQueue.Enqueue(event); err != nil {
			log.Error("Failed to enqueue event %s: %v", event, err)
		}
	}
}

// SendEvent writes a single event. Writes are serialized and never retried.
func (p *Peer) SendEvent(event messages.Event) error {
	b, err := messages.MarshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	p.writeLock.Lock()
	defer p.writeLock.Unlock()

	if p.closed.Load() {
		return &ErrConnectionClosedLocally{}
	}
	if _, err := p.conn.Write(b); err != nil {
		return fmt.Errorf("failed to write event %s: %w", event, err)
	}
	log.Trace("Sent event %s", event)
	p.record(journal.DirectionSent, event.String())

	return nil
}

func (p *Peer) record(direction journal.Direction, literal string) {
	if p.journal == nil {
		return
	}
	if err := p.journal.Record(direction, literal); err != nil {
		log.Error("Failed to journal %s event %q: %v", direction, literal, err)
	}
}

// Close closes the connection and unblocks HandleEvents.
func (p *Peer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.conn.Close()
}
