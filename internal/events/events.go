// Package events is the in-process pub/sub used by the controllers: a
// plain subscription hub plus a ticker-driven notification feed.
package events

import (
	"context"
	"sync"
	"time"
)

// Event is one published occurrence.
type Event struct {
	Kind    string
	Message string
	At      time.Time
}

// Hub dispatches events to subscribers in registration order. Cancelling
// a subscription guarantees no further delivery to it.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
	order  []int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: map[int]func(Event){}}
}

// Subscribe registers fn and returns its cancellation point. Cancel is
// idempotent.
func (h *Hub) Subscribe(fn func(Event)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.order = append(h.order, id)

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish delivers ev to every live subscriber, in subscription order.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	var fns []func(Event)
	for _, id := range h.order {
		if fn, ok := h.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Close drops all subscriptions; later Publish calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = map[int]func(Event){}
	h.order = nil
}

// Notification is one feed entry.
type Notification struct {
	Event
	Read bool
}

const feedKeep = 10

// Feed polls a source on an interval and keeps the latest entries with an
// unread count. It replaces a push channel the backend does not offer.
type Feed struct {
	hub      *Hub
	interval time.Duration
	source   func(ctx context.Context) []Event

	mu      sync.Mutex
	items   []Notification
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewFeed builds a feed polling source every interval and republishing
// fresh events on hub (hub may be nil).
func NewFeed(hub *Hub, interval time.Duration, source func(ctx context.Context) []Event) *Feed {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Feed{hub: hub, interval: interval, source: source}
}

// Start begins polling until Close or ctx cancellation.
func (f *Feed) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.stopped = make(chan struct{})
	stopped := f.stopped
	f.mu.Unlock()

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.poll(ctx)
			}
		}
	}()
}

func (f *Feed) poll(ctx context.Context) {
	events := f.source(ctx)
	if len(events) == 0 {
		return
	}
	f.mu.Lock()
	for _, ev := range events {
		f.items = append(f.items, Notification{Event: ev})
	}
	if len(f.items) > feedKeep {
		f.items = f.items[len(f.items)-feedKeep:]
	}
	f.mu.Unlock()

	if f.hub != nil {
		for _, ev := range events {
			f.hub.Publish(ev)
		}
	}
}

// Notifications returns the retained entries, newest last.
func (f *Feed) Notifications() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Unread counts entries not yet marked read.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead marks the i-th retained entry read.
func (f *Feed) MarkRead(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= 0 && i < len(f.items) {
		f.items[i].Read = true
	}
}

// MarkAllRead marks every retained entry read.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

// Clear drops all retained entries.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
}

// Close stops the ticker and waits for the poll loop to exit.
func (f *Feed) Close() {
	f.mu.Lock()
	cancel, stopped := f.cancel, f.stopped
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if stopped != nil {
		<-stopped
	}
}
