package cart

import "github.com/restyle/restyle/internal/localstore"

// LocalList is the anonymous fallback: a plain id list remembered
// across visits with a soft expiry, no quantities and no server
// round trips. It is a UX convenience only and is never treated as
// authoritative once a server session exists.
type LocalList struct {
	store *localstore.Store
}

// NewLocalList binds the fallback list to the persistent store.
func NewLocalList(store *localstore.Store) *LocalList {
	return &LocalList{store: store}
}

// IDs returns the remembered product ids.
func (l *LocalList) IDs() []string {
	return l.store.ReadIDs(localstore.KeyCart)
}

// Contains reports whether id is in the list.
func (l *LocalList) Contains(id string) bool {
	for _, existing := range l.IDs() {
		if existing == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present.
func (l *LocalList) Add(id string) error {
	ids := l.IDs()
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return l.store.WriteIDs(localstore.KeyCart, append(ids, id), localstore.DefaultTTLDays)
}

// Remove drops id from the list.
func (l *LocalList) Remove(id string) error {
	ids := l.IDs()
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return l.store.WriteIDs(localstore.KeyCart, kept, localstore.DefaultTTLDays)
}
