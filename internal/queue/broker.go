package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Submit after the broker has been closed.
var ErrClosed = errors.New("queue: broker closed")

// Broker hands jobs from producers to workers over a buffered channel.
// Submit blocks when the buffer is full, giving natural backpressure.
type Broker struct {
	jobs chan Job

	mu     sync.Mutex
	closed bool
}

// NewBroker builds a broker with the given buffer size.
func NewBroker(buffer int) *Broker {
	if buffer < 1 {
		buffer = 1
	}
	return &Broker{jobs: make(chan Job, buffer)}
}

// Submit enqueues a job, blocking until there is buffer space or ctx is
// canceled.
func (b *Broker) Submit(ctx context.Context, job Job) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.mu.Unlock()

	select {
	case b.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs exposes the consuming side of the queue. The channel closes after
// Close, letting workers drain and exit.
func (b *Broker) Jobs() <-chan Job {
	return b.jobs
}

// Close stops accepting jobs. Already-buffered jobs remain consumable.
// The producer owns the channel: Close must happen after the last Submit
// has returned.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.jobs)
	}
}
