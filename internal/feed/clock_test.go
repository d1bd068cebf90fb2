package feed

import (
	"sync"
	"time"
)

// manualClock fires timers only when told to.
type manualClock struct {
	mu      sync.Mutex
	pending []chan time.Time
}

func (m *manualClock) After(time.Duration) <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time, 1)
	m.pending = append(m.pending, ch)
	return ch
}

// Fire releases every timer created so far.
func (m *manualClock) Fire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.pending {
		ch <- time.Now()
	}
	m.pending = nil
}

func (m *manualClock) Waiting() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingPublisher) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingPublisher) ofType(typ string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// instantClock fires every timer straight away.
type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}
