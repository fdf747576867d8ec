package audit

import (
	"context"
	"sync/atomic"
)

// ChannelPublisher enqueues events onto a bounded channel without blocking
// the emitting action. When the channel is full the event is dropped and
// counted; audit backpressure must never stall a ledger transition.
type ChannelPublisher struct {
	inbox   chan Event
	dropped atomic.Int64
}

// NewChannelPublisher creates a publisher with the given buffer capacity.
func NewChannelPublisher(capacity int) *ChannelPublisher {
	if capacity <= 0 {
		capacity = 1024
	}
	return &ChannelPublisher{inbox: make(chan Event, capacity)}
}

// Emit enqueues the event, dropping it if the buffer is full.
func (p *ChannelPublisher) Emit(ctx context.Context, event Event) error {
	select {
	case p.inbox <- event:
	default:
		p.dropped.Add(1)
	}
	return nil
}

// Inbox exposes the receive side for the draining worker.
func (p *ChannelPublisher) Inbox() <-chan Event {
	return p.inbox
}

// Dropped returns the number of events lost to a full buffer.
func (p *ChannelPublisher) Dropped() int64 {
	return p.dropped.Load()
}
