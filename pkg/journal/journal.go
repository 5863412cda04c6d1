package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	journalfb "github.com/cbodonnell/swipeduel/flatbuffers/journal"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// Direction tells whether a journaled event was sent or received.
type Direction uint8

const (
	DirectionSent Direction = iota + 1
	DirectionReceived
)

func (d Direction) String() string {
	switch d {
	case DirectionSent:
		return "sent"
	case DirectionReceived:
		return "received"
	default:
		return "unknown"
	}
}

// Entry is a single journaled protocol event.
type Entry struct {
	Timestamp time.Time
	Direction Direction
	Literal   string
}

// Recorder records protocol events.
// Implementations must be thread-safe.
type Recorder interface {
	Record(direction Direction, literal string) error
}

// Writer appends size-prefixed flatbuffer entries to a zstd stream.
type Writer struct {
	lock    sync.Mutex
	encoder *zstd.Encoder
	closer  io.Closer
	now     func() time.Time
}

// NewWriter creates a Writer on top of w. The caller keeps ownership of w.
func NewWriter(w io.Writer) (*Writer, error) {
	encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	return &Writer{
		encoder: encoder,
		now:     time.Now,
	}, nil
}

// Open creates or truncates the journal file at path.
func Open(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %v", path, err)
	}
	w, err := NewWriter(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	w.closer = file
	return w, nil
}

// Record appends an entry and flushes it to the underlying writer.
func (w *Writer) Record(direction Direction, literal string) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	b := serializeEntry(w.now().UnixMilli(), direction, literal)
	if _, err := w.encoder.Write(b); err != nil {
		return fmt.Errorf("failed to write journal entry: %v", err)
	}
	if err := w.encoder.Flush(); err != nil {
		return fmt.Errorf("failed to flush journal entry: %v", err)
	}
	return nil
}

// Close ends the zstd stream and closes the file opened by Open.
func (w *Writer) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if err := w.encoder.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %v", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

func serializeEntry(timestamp int64, direction Direction, literal string) []byte {
	builder := flatbuffers.NewBuilder(64)

	literalOffset := builder.CreateString(literal)

	journalfb.EntryStart(builder)
	journalfb.EntryAddTimestamp(builder, timestamp)
	journalfb.EntryAddDirection(builder, byte(direction))
	journalfb.EntryAddLiteral(builder, literalOffset)
	entry := journalfb.EntryEnd(builder)
	journalfb.FinishSizePrefixedEntryBuffer(builder, entry)

	return builder.FinishedBytes()
}

// ReadAll decodes every entry of a journal stream.
func ReadAll(r io.Reader) ([]Entry, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer decoder.Close()

	var entries []Entry
	prefix := make([]byte, flatbuffers.SizeUint32)
	for {
		if _, err := io.ReadFull(decoder, prefix); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return nil, fmt.Errorf("failed to read entry size: %v", err)
		}
		body := make([]byte, flatbuffers.GetUint32(prefix))
		if _, err := io.ReadFull(decoder, body); err != nil {
			return nil, fmt.Errorf("failed to read entry: %v", err)
		}
		entry := journalfb.GetRootAsEntry(body, 0)
		entries = append(entries, Entry{
			Timestamp: time.UnixMilli(entry.Timestamp()),
			Direction: Direction(entry.Direction()),
			Literal:   string(entry.Literal()),
		})
	}
}
