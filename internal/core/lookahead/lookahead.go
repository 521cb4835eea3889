// Package lookahead wraps a forward-only sequence with a one-item peek slot.
package lookahead

import "iter"

// Lookahead exposes the next item of a sequence without consuming it.
//
// The peek slot is filled on construction. Close must be called when the
// Lookahead is abandoned before the sequence is exhausted.
type Lookahead[T any] struct {
	next func() (T, bool)
	stop func()
	peek T
	ok   bool
}

// New wraps seq and primes the first peek value.
func New[T any](seq iter.Seq[T]) *Lookahead[T] {
	next, stop := iter.Pull(seq)
	l := &Lookahead[T]{next: next, stop: stop}
	l.fill()
	return l
}

// Peek returns the next item without consuming it. The boolean is false once
// the sequence is exhausted.
func (l *Lookahead[T]) Peek() (T, bool) {
	return l.peek, l.ok
}

// Advance consumes and returns the next item, refilling the peek slot from the
// underlying sequence.
func (l *Lookahead[T]) Advance() (T, bool) {
	item, ok := l.peek, l.ok
	if ok {
		l.fill()
	}
	return item, ok
}

// Close releases the underlying sequence.
func (l *Lookahead[T]) Close() {
	l.stop()
	var zero T
	l.peek, l.ok = zero, false
}

func (l *Lookahead[T]) fill() {
	l.peek, l.ok = l.next()
}
