package storage

import (
	"context"
	"sync"
)

type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

var _ Slot = (*MemorySlot)(nil)

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith starts the slot with a payload, as if written earlier.
func NewMemorySlotWith(data []byte) *MemorySlot {
	s := &MemorySlot{}
	s.store(data)
	return s
}

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.store(data)
	return nil
}

func (s *MemorySlot) store(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.set = true
}
