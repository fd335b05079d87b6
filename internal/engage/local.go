package engage

import "github.com/restyle/restyle/internal/localstore"

// LocalSet is the anonymous favorites fallback: an ordered unique id
// list held only in the persistent local store with a soft expiry.
// No network is involved and nothing here is authoritative once a
// server session exists.
type LocalSet struct {
	store *localstore.Store
}

// NewLocalSet binds the fallback set to the persistent store.
func NewLocalSet(store *localstore.Store) *LocalSet {
	return &LocalSet{store: store}
}

// IDs returns the remembered ids in insertion order.
func (l *LocalSet) IDs() []string {
	return l.store.ReadIDs(localstore.KeyFavorites)
}

// Contains reports whether id is in the set.
func (l *LocalSet) Contains(id string) bool {
	for _, existing := range l.IDs() {
		if existing == id {
			return true
		}
	}
	return false
}

// Toggle flips membership for id and returns the new state.
func (l *LocalSet) Toggle(id string) (bool, error) {
	ids := l.IDs()
	kept := ids[:0]
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		kept = append(kept, id)
	}
	if err := l.store.WriteIDs(localstore.KeyFavorites, kept, localstore.DefaultTTLDays); err != nil {
		return found, err
	}
	return !found, nil
}
