package store

import (
	"context"
	"errors"
	"sync"
)

// DefaultSlotKey names the slot the board is stored under.
const DefaultSlotKey = "kanbanBoardState"

// ErrSlotEmpty is returned by Slot.Read when nothing has been written yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single durable key-value cell holding the serialised board.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, raw []byte) error
}

// MemorySlot keeps the snapshot in process memory. Used by tests and `--backend memory`.
type MemorySlot struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemorySlot(initial []byte) *MemorySlot {
	return &MemorySlot{raw: append([]byte(nil), initial...)}
}

func (m *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.raw) == 0 {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), m.raw...), nil
}

func (m *MemorySlot) Write(ctx context.Context, raw []byte) error {
	m.mu.Lock()
	m.raw = append([]byte(nil), raw...)
	m.mu.Unlock()
	return nil
}
