package daemon

import (
	"sync"
	"time"
)

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventSummaryDelta = "summary_delta"
)

// Event is emitted on the first poll and whenever the summary changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// feed numbers events, keeps the newest limit of them and fans each one
// out to stream subscribers. A subscriber whose buffer is full misses the
// event.
type feed struct {
	mu      sync.Mutex
	limit   int
	lastID  int64
	recent  []Event
	nextSub int
	subs    map[int]chan Event
}

func newFeed(limit int) *feed {
	return &feed{limit: limit, subs: make(map[int]chan Event)}
}

// emit assigns ev the next ID, records it and delivers it.
func (f *feed) emit(ev Event) Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastID++
	ev.ID = f.lastID

	f.recent = append(f.recent, ev)
	if over := len(f.recent) - f.limit; over > 0 {
		f.recent = append([]Event(nil), f.recent[over:]...)
	}

	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// history returns a copy of the retained events, oldest first.
func (f *feed) history() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event{}, f.recent...)
}

// subscribe registers a buffered channel. Call cancel to unregister.
func (f *feed) subscribe(buffer int) (events <-chan Event, cancel func()) {
	ch := make(chan Event, buffer)

	f.mu.Lock()
	f.nextSub++
	id := f.nextSub
	f.subs[id] = ch
	f.mu.Unlock()

	return ch, func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *feed) counts() (events, subscribers int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recent), len(f.subs)
}
