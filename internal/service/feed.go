package service

import (
	"sync"

	wm "writeoff_monitor"
)

const feedBuffer = 8

// feed fans finished runs out to subscribers. Slow subscribers miss runs
// rather than blocking the engine.
type feed struct {
	mu   sync.Mutex
	next int
	subs map[int]chan wm.RunSummary
}

func newFeed() *feed {
	return &feed{subs: make(map[int]chan wm.RunSummary)}
}

func (f *feed) subscribe() (<-chan wm.RunSummary, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan wm.RunSummary, feedBuffer)
	f.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (f *feed) publish(sum wm.RunSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- sum:
		default:
		}
	}
}
