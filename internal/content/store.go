package content

import (
	"sort"

	"github.com/victorward/dailytarot/internal/domain"
)

// Store is the loaded mapping from CardID to card record. It is built once
// by Load and is read-only afterwards, so concurrent reads need no
// synchronization.
type Store struct {
	cards map[domain.CardID]domain.CardRecord
}

// Get returns the record for the given id, if loaded.
func (s *Store) Get(id domain.CardID) (domain.CardRecord, bool) {
	record, ok := s.cards[id]
	return record, ok
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	return len(s.cards)
}

// IDs returns all loaded card ids in deterministic order.
func (s *Store) IDs() []domain.CardID {
	ids := make([]domain.CardID, 0, len(s.cards))
	for id := range s.cards {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
