package session

import (
	"github.com/patrickmn/go-cache"

	"github.com/voyagio/voyagio-server/internal/types"
)

// Store is the minimal persistence abstraction behind the session service.
// The in-memory implementation keeps sessions for the life of the process;
// a future implementation can add per-key locking or external persistence
// without touching callers.
type Store interface {
	Get(id string) (*types.Session, bool)
	Upsert(id string, s *types.Session)
	Delete(id string)
	IDs() []string
	Len() int
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore backs the session map with a concurrent-safe cache that never
// expires entries. Sessions are stored by pointer, so mutations through one
// handle are visible through every other handle of the same session.
type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryStore) Get(id string) (*types.Session, bool) {
	v, ok := m.c.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*types.Session), true
}

func (m *MemoryStore) Upsert(id string, s *types.Session) {
	m.c.Set(id, s, cache.NoExpiration)
}

func (m *MemoryStore) Delete(id string) {
	m.c.Delete(id)
}

func (m *MemoryStore) IDs() []string {
	items := m.c.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids
}

func (m *MemoryStore) Len() int {
	return m.c.ItemCount()
}
