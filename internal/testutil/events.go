package testutil

import (
	"context"
	"sync"

	"github.com/tair/supply-manager/kafka"
)

// RecordingPublisher keeps published events in memory
type RecordingPublisher struct {
	mu       sync.Mutex
	LowStock []kafka.LowStockEvent
	Requests []kafka.RequestStatusChangedEvent
}

func (p *RecordingPublisher) PublishLowStock(_ context.Context, e kafka.LowStockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LowStock = append(p.LowStock, e)
	return nil
}

func (p *RecordingPublisher) PublishRequestStatusChanged(_ context.Context, e kafka.RequestStatusChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Requests = append(p.Requests, e)
	return nil
}

// Statuses returns the published request statuses in order
func (p *RecordingPublisher) Statuses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Requests))
	for _, e := range p.Requests {
		out = append(out, e.Status)
	}
	return out
}
