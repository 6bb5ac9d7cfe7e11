package navigator

import "time"

// FrameQueue is a FrameScheduler driven by explicit Advance calls. The CLI
// uses it to replay a scroll and it stands in for a display in tests.
type FrameQueue struct {
	next    FrameID
	pending []queuedFrame
}

type queuedFrame struct {
	id FrameID
	fn func(now time.Duration)
}

func (q *FrameQueue) RequestFrame(fn func(now time.Duration)) FrameID {
	q.next++
	q.pending = append(q.pending, queuedFrame{id: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks wait for the next frame.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Advance runs the callbacks queued before the call with timestamp now.
// Callbacks requested while running wait for the following Advance.
func (q *FrameQueue) Advance(now time.Duration) {
	batch := q.pending
	q.pending = nil
	for _, f := range batch {
		f.fn(now)
	}
}

// Run advances in fixed steps until the queue drains or limit frames have
// run. It returns the number of frames advanced.
func (q *FrameQueue) Run(start, step time.Duration, limit int) int {
	n := 0
	for now := start; q.Pending() > 0 && n < limit; now += step {
		q.Advance(now)
		n++
	}
	return n
}
