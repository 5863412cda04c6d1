// queue package

package queue

import (
	"fmt"
	"sync"
)

const (
	// QueueBufferSize represents the default capacity of a queue
	QueueBufferSize = 1024
)

// ErrQueueFull is returned when an item is enqueued into a queue at capacity.
type ErrQueueFull struct {
	Capacity int
}

func (e *ErrQueueFull) Error() string {
	return fmt.Sprintf("queue is full (capacity %d)", e.Capacity)
}

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue[T any] struct {
	ch   chan T
	lock sync.Mutex
}

// NewInMemoryQueue creates a new queue with the given capacity.
// A non-positive capacity falls back to QueueBufferSize.
func NewInMemoryQueue[T any](capacity int) *InMemoryQueue[T] {
	if capacity <= 0 {
		capacity = QueueBufferSize
	}
	return &InMemoryQueue[T]{
		ch: make(chan T, capacity),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue[T]) Enqueue(item T) error {
	select {
	case q.ch <- item:
		return nil
	default:
		return &ErrQueueFull{Capacity: cap(q.ch)}
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue[T]) Size() int {
	return len(q.ch)
}

// ReadAllMessages reads all pending messages in the queue
func (q *InMemoryQueue[T]) ReadAllMessages() ([]T, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	var messages []T
	for {
		select {
		case item := <-q.ch:
			messages = append(messages, item)
		default:
			return messages, nil
		}
	}
}

// ClearQueue clears all messages from the queue.
func (q *InMemoryQueue[T]) ClearQueue() {
	q.lock.Lock()
	defer q.lock.Unlock()

	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}
