package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/scrumpoker/internal/dependencies/ids"
)

// MockIDs returns queued ids, then a numbered fallback once the queue is drained
type MockIDs struct {
	mu     sync.Mutex
	queued []string
	issued int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued id
func (m *MockIDs) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	if len(m.queued) > 0 {
		id := m.queued[0]
		m.queued = m.queued[1:]
		return id
	}
	return fmt.Sprintf("id-%04d", m.issued)
}

// Queue adds ids to be returned by subsequent NewID calls
func (m *MockIDs) Queue(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, values...)
}
