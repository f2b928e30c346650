package analysis

import "github.com/brianjo/pyrefly/internal/module"

// Subscriber is notified each time Transaction.Run actually recomputes a
// handle (as opposed to reusing a cached artifact). Tests use this to count
// recomputations and assert on incrementality.
type Subscriber interface {
	OnRecompute(handle module.Handle)
}

// NoopSubscriber ignores every notification.
type NoopSubscriber struct{}

func (NoopSubscriber) OnRecompute(module.Handle) {}

// SubscriberFunc adapts a plain function to a Subscriber.
type SubscriberFunc func(module.Handle)

func (f SubscriberFunc) OnRecompute(handle module.Handle) { f(handle) }
