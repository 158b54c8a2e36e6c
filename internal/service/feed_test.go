package service

import (
	"testing"

	wm "writeoff_monitor"
)

func TestFeed_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	f := newFeed()
	ch, cancel := f.subscribe()
	for i := 0; i < feedBuffer+5; i++ {
		f.publish(wm.RunSummary{Records: i})
	}
	if len(ch) != feedBuffer {
		t.Fatalf("buffered = %d, want %d", len(ch), feedBuffer)
	}
	if first := <-ch; first.Records != 0 {
		t.Fatalf("first = %d, want 0", first.Records)
	}

	cancel()
	cancel()
	f.publish(wm.RunSummary{})
	for range ch {
	}
}
