package viewport

import (
	"fmt"

	"github.com/wandb/timechart/internal/observability"
)

// maxPublishRounds bounds how many times re-entrant publishes are
// redelivered within one outer Publish call.
const maxPublishRounds = 16

type subscription[T any] struct {
	id      int
	handler func(T)
	active  bool
}

// Subject delivers published values to its subscribers synchronously.
//
// A handler may publish again while it is being called. Such a value is
// not delivered recursively: it is queued and delivered to every
// subscriber after the current delivery round completes. Several
// re-entrant publishes in one round coalesce into the last one.
//
// Subject is not safe for concurrent use.
type Subject[T any] struct {
	subs   []*subscription[T]
	nextID int

	publishing bool
	queued     T
	hasQueued  bool

	logger *observability.CoreLogger
}

func NewSubject[T any](logger *observability.CoreLogger) *Subject[T] {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	return &Subject[T]{logger: logger}
}

// Subscribe registers handler and returns a function that removes it.
//
// A handler added during a delivery round is first called in the next
// round.
func (s *Subject[T]) Subscribe(handler func(T)) (unsubscribe func()) {
	s.nextID++
	sub := &subscription[T]{id: s.nextID, handler: handler, active: true}
	s.subs = append(s.subs, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, x := range s.subs {
			if x == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of subscribers.
func (s *Subject[T]) Len() int {
	return len(s.subs)
}

// Publish delivers value to every subscriber before returning.
func (s *Subject[T]) Publish(value T) {
	if s.publishing {
		s.queued = value
		s.hasQueued = true
		return
	}

	s.publishing = true
	defer func() { s.publishing = false }()

	s.deliver(value)
	for round := 1; s.hasQueued; round++ {
		if round >= maxPublishRounds {
			s.hasQueued = false
			s.logger.Debug(fmt.Sprintf(
				"viewport: dropping re-entrant publish after %d rounds",
				round,
			))
			return
		}
		next := s.queued
		s.hasQueued = false
		s.deliver(next)
	}
}

func (s *Subject[T]) deliver(value T) {
	round := append([]*subscription[T](nil), s.subs...)
	for _, sub := range round {
		if sub.active {
			sub.handler(value)
		}
	}
}
