package domain

import "context"

const (
	EventPROpened     = "pr.opened"
	EventPRClosed     = "pr.closed"
	EventPRAssigned   = "pr.assigned"
	EventPRUnassigned = "pr.unassigned"
)

type Event struct {
	Type    string
	Payload map[string]any
}

type EventBus interface {
	Publish(ctx context.Context, e Event)
}

// EventHandler receives events after they leave the bus; handlers run on pool workers.
type EventHandler func(ctx context.Context, e Event)
