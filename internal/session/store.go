// Package session keeps the live booking form controllers, one per open
// form. Forms are deliberately instance-scoped: no draft state is shared
// between consoles or persisted anywhere.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"

	"stayfront/internal/booking"
)

type entry struct {
	ctrl     *booking.Controller
	ref      string
	lastSeen time.Time
}

// Store registers open forms by id and reaps idle ones, so an abandoned
// console tab does not pin memory forever.
type Store struct {
	mu    sync.RWMutex
	forms map[string]*entry
	ttl   time.Duration
	hash  *hashids.HashID
	seq   int64
}

func NewStore(ttl time.Duration) (*Store, error) {
	hd := hashids.NewData()
	hd.Salt = "stayfront-draft-ref"
	hd.MinLength = 6

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}

	s := &Store{
		forms: make(map[string]*entry),
		ttl:   ttl,
		hash:  h,
	}
	go s.janitor()
	return s, nil
}

// Open registers a controller and returns its id plus a short draft
// reference for support tooling.
func (s *Store) Open(ctrl *booking.Controller) (id, ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	ref, _ = s.hash.EncodeInt64([]int64{s.seq})
	id = uuid.NewString()
	s.forms[id] = &entry{ctrl: ctrl, ref: ref, lastSeen: time.Now()}
	return id, ref
}

// Get looks up an open form and refreshes its idle timer.
func (s *Store) Get(id string) (*booking.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.forms[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.ctrl, true
}

// Discard drops a form. Discarding an unknown id is a no-op.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, id)
}

// Len reports the number of open forms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.ttl)
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, e := range s.forms {
			if e.lastSeen.Before(cutoff) {
				delete(s.forms, id)
			}
		}
		s.mu.Unlock()
	}
}
