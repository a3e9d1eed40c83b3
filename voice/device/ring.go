package device

import (
	"fmt"
	"sync"
)

// ring is a bounded FIFO of samples shared between a driver thread and the
// audio loop.
type ring struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf    []float32
	head   int
	size   int
	closed bool

	dropped int
}

func newRing(capacity int) *ring {
	r := &ring{buf: make([]float32, capacity)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// push appends p, discarding the oldest samples when full. It never blocks.
func (r *ring) push(p []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if len(p) > len(r.buf) {
		r.dropped += len(p) - len(r.buf)
		p = p[len(p)-len(r.buf):]
	}
	if over := r.size + len(p) - len(r.buf); over > 0 {
		r.head = (r.head + over) % len(r.buf)
		r.size -= over
		r.dropped += over
	}
	r.put(p)
	r.cond.Broadcast()
}

// pushWait appends all of p, waiting for space as needed.
func (r *ring) pushWait(p []float32) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	written := 0
	for written < len(p) {
		for !r.closed && r.size == len(r.buf) {
			r.cond.Wait()
		}
		if r.closed {
			return written, ErrClosed
		}
		n := min(len(p)-written, len(r.buf)-r.size)
		r.put(p[written : written+n])
		written += n
		r.cond.Broadcast()
	}
	return written, nil
}

// popFull waits until len(p) samples are available and copies them out.
// It also reports how many samples were dropped since the previous call.
func (r *ring) popFull(p []float32) (n, dropped int, err error) {
	if len(p) > len(r.buf) {
		return 0, 0, fmt.Errorf("%w: read of %d exceeds buffer of %d", ErrConfig, len(p), len(r.buf))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for !r.closed && r.size < len(p) {
		r.cond.Wait()
	}
	if r.closed {
		return 0, 0, ErrClosed
	}
	r.take(p)
	r.cond.Broadcast()

	dropped = r.dropped
	r.dropped = 0
	return len(p), dropped, nil
}

// popAvailable copies up to len(p) samples without waiting.
func (r *ring) popAvailable(p []float32) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(p), r.size)
	r.take(p[:n])
	if n > 0 {
		r.cond.Broadcast()
	}
	return n
}

func (r *ring) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.cond.Broadcast()
}

// put and take assume r.mu is held and that the ring has room or data.
func (r *ring) put(p []float32) {
	tail := (r.head + r.size) % len(r.buf)
	n := copy(r.buf[tail:], p)
	copy(r.buf, p[n:])
	r.size += len(p)
}

func (r *ring) take(p []float32) {
	n := copy(p, r.buf[r.head:min(r.head+len(p), len(r.buf))])
	copy(p[n:], r.buf[:len(p)-n])
	r.head = (r.head + len(p)) % len(r.buf)
	r.size -= len(p)
}
