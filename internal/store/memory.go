package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"gitlab.com/dirk.krummacker/contacts-app/internal/model"
)

// MemoryStore implements [Store] in process memory. Contacts are kept sorted by id.
type MemoryStore struct {
	mu       sync.Mutex
	lastID   int64
	contacts []model.Contact
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(cs ...model.Contact) *MemoryStore {
	s := &MemoryStore{}
	for _, c := range cs {
		s.contacts = append(s.contacts, c)
		s.lastID = max(s.lastID, c.Id)
	}
	slices.SortFunc(s.contacts, func(a, b model.Contact) int { return cmp.Compare(a.Id, b.Id) })
	return s
}

func (s *MemoryStore) index(id int64) (int, bool) {
	return slices.BinarySearchFunc(s.contacts, id, func(c model.Contact, id int64) int {
		return cmp.Compare(c.Id, id)
	})
}

func (s *MemoryStore) List(_ context.Context) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Contact{}, s.contacts...), nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index(id)
	if !ok {
		return model.Contact{}, ErrNotFound
	}
	return s.contacts[i], nil
}

func (s *MemoryStore) Insert(_ context.Context, name, email, phone string) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	c := model.Contact{Id: s.lastID, Name: name, Email: email, Phone: phone}
	s.contacts = append(s.contacts, c)
	return c, nil
}

func (s *MemoryStore) Save(_ context.Context, c model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index(c.Id); ok {
		s.contacts[i] = c
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, c model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index(c.Id); ok {
		s.contacts = slices.Delete(s.contacts, i, i+1)
	}
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
