package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// DraftStore borradores del editor en memoria del proceso.
// Los borradores nunca se persisten: un reinicio los descarta.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*entity.Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*entity.Draft)}
}

func (s *DraftStore) Save(d *entity.Draft) error {
	if d == nil || d.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.drafts[d.ID]; exists {
		return domain.ErrDuplicate
	}
	s.drafts[d.ID] = d.Clone()
	return nil
}

func (s *DraftStore) Get(id string) (*entity.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[id].Clone(), nil
}

// Update aplica fn sobre una copia y la guarda solo si fn no falla.
func (s *DraftStore) Update(id string, fn func(d *entity.Draft) error) (*entity.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.drafts[id] = next
	return next.Clone(), nil
}

func (s *DraftStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(s.drafts, id)
	return nil
}

func (s *DraftStore) DeleteBySession(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, d := range s.drafts {
		if d.SessionID == sessionID {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}

func (s *DraftStore) DeleteIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, d := range s.drafts {
		if d.TouchedAt.Before(before) {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}

// Len cantidad de borradores abiertos.
func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
