package db

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"
)

// Operation names used by MemoryStore fault injection.
const (
	OpGet          = "get"
	OpSet          = "set"
	OpIsMember     = "ismember"
	OpAddMember    = "addmember"
	OpRemoveMember = "removemember"
	OpMembers      = "members"
)

// MemoryStore is an in-process Store. It backs STORE_DRIVER=memory and the tests.
// Failures can be injected per (operation, key) to exercise partial-write paths.
type MemoryStore struct {
	mu      sync.RWMutex
	strings map[string]string
	sets    map[string]map[string]struct{}
	faults  map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strings: make(map[string]string),
		sets:    make(map[string]map[string]struct{}),
		faults:  make(map[string]error),
	}
}

// FailOn makes every call of op against key return err until ClearFaults is called.
func (m *MemoryStore) FailOn(op, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op+" "+key] = err
}

func (m *MemoryStore) ClearFaults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = make(map[string]error)
}

func (m *MemoryStore) fault(op, key string) error {
	if err, ok := m.faults[op+" "+key]; ok {
		return fmt.Errorf("memory %s %s: %w", op, key, err)
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault(OpGet, key); err != nil {
		return "", err
	}
	val, ok := m.strings[key]
	if !ok {
		return "", ErrNil
	}
	return val, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpSet, key); err != nil {
		return err
	}
	m.strings[key] = value
	return nil
}

func (m *MemoryStore) IsMember(_ context.Context, key, member string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault(OpIsMember, key); err != nil {
		return false, err
	}
	_, ok := m.sets[key][member]
	return ok, nil
}

func (m *MemoryStore) AddMember(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpAddMember, key); err != nil {
		return err
	}
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	set[member] = struct{}{}
	return nil
}

func (m *MemoryStore) RemoveMember(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpRemoveMember, key); err != nil {
		return err
	}
	set, ok := m.sets[key]
	if !ok {
		return nil
	}
	delete(set, member)
	// Redis drops empty sets.
	if len(set) == 0 {
		delete(m.sets, key)
	}
	return nil
}

// Members returns the set sorted, so callers see a stable order.
func (m *MemoryStore) Members(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fault(OpMembers, key); err != nil {
		return nil, err
	}
	members := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		members = append(members, member)
	}
	sort.Strings(members)
	return members, nil
}

func (m *MemoryStore) ScanKeys(_ context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.strings {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	for key := range m.sets {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
