package reminder

import (
	"context"
	"sync"
)

type StubPublisher struct {
	mu        sync.Mutex
	Published []Reminder
	Err       error
}

func (s *StubPublisher) Publish(ctx context.Context, reminder Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Published = append(s.Published, reminder)
	return nil
}

func (s *StubPublisher) Close() error {
	return nil
}

func (s *StubPublisher) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = nil
	s.Err = nil
}
