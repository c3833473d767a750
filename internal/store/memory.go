package store

import (
	"context"
	"sync"
)

// Memory keeps snapshots in process. Safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	snaps map[string]Snapshot
}

func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]Snapshot)}
}

func (m *Memory) Load(_ context.Context, code string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[code]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return Snapshot{Version: snap.Version, State: snap.State.Clone()}, nil
}

func (m *Memory) Save(_ context.Context, code string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[code] = Snapshot{Version: snap.Version, State: snap.State.Clone()}
	return nil
}

func (m *Memory) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, code)
	return nil
}

func (m *Memory) Close() error { return nil }
