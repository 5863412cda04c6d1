package queue

// Queue represents a basic bounded queue.
// Implementations must be safe for one producer and one consumer running concurrently.
type Queue[T any] interface {
	Enqueue(item T) error
	Size() int
	ReadAllMessages() ([]T, error)
	ClearQueue()
}
