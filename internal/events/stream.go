package events

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Stream is a push-based event source with any number of independent
// subscribers. The zero value is ready to use.
type Stream[T any] struct {
	mu   sync.RWMutex
	subs []*Subscription
	fns  map[*Subscription]func(T)
}

// Subscription is a registration on a Stream. Cancel detaches it.
type Subscription struct {
	ID string

	once   sync.Once
	cancel func()
}

// Cancel detaches the subscription. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Subscribe registers fn. Registrations are additive: subscribing the same
// function twice delivers each event twice.
func (s *Stream[T]) Subscribe(fn func(T)) *Subscription {
	sub := &Subscription{ID: newID()}
	sub.cancel = func() { s.remove(sub) }

	s.mu.Lock()
	if s.fns == nil {
		s.fns = make(map[*Subscription]func(T))
	}
	s.subs = append(s.subs, sub)
	s.fns[sub] = fn
	s.mu.Unlock()
	return sub
}

// Publish delivers v to every current subscriber in subscription order.
func (s *Stream[T]) Publish(v T) {
	s.mu.RLock()
	fns := make([]func(T), 0, len(s.subs))
	for _, sub := range s.subs {
		fns = append(fns, s.fns[sub])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len reports the number of active subscriptions.
func (s *Stream[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Stream[T]) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fns, sub)
	for i, cur := range s.subs {
		if cur == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func newID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
