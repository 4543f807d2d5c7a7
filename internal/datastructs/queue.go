package queue

import (
	"context"
	"errors"
)

var ErrEmptyQueue = errors.New("empty queue")

// Queue is a bounded FIFO that never blocks producers.
type Queue[T any] struct {
	data chan T
}

func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 {
		size = 1
	}
	return &Queue[T]{data: make(chan T, size)}
}

// Enqueue reports false when the queue is full and value was dropped.
func (q *Queue[T]) Enqueue(value T) bool {
	select {
	case q.data <- value:
		return true
	default:
		return false
	}
}

func (q *Queue[T]) TryDequeue() (T, error) {
	var res T
	select {
	case res = <-q.data:
	default:
		return res, ErrEmptyQueue
	}
	return res, nil
}

// Dequeue waits for a value or for ctx to be done.
func (q *Queue[T]) Dequeue(ctx context.Context) (T, error) {
	var res T
	select {
	case res = <-q.data:
		return res, nil
	case <-ctx.Done():
		return res, ctx.Err()
	}
}

func (q *Queue[T]) Len() int { return len(q.data) }

func (q *Queue[T]) Cap() int { return cap(q.data) }
