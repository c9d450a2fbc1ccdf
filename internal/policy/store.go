package policy

import "sync"

// Snapshot is a consistent view of the store.
type Snapshot struct {
	Policy LayoutPolicy
	// CloseKeepsFocus enables focus preservation when a window that is
	// not the top of its stack is closed.
	CloseKeepsFocus bool
}

// Observer is called after the store changes.
type Observer func(prev, cur Snapshot)

// Subscription is an active observer registration.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes the observer.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.store == nil {
		return
	}
	s.store.mu.Lock()
	delete(s.store.observers, s.id)
	s.store.mu.Unlock()
}

// Store holds the active layout policy and the close focus flag.
// Planners read it on every call; mutation happens on the control
// goroutine.
type Store struct {
	mu        sync.RWMutex
	current   Snapshot
	observers map[uint64]Observer
	nextID    uint64
}

// NewStore creates a store holding initial.
func NewStore(initial Snapshot) *Store {
	return &Store{
		current:   initial,
		observers: make(map[uint64]Observer),
	}
}

// Default returns the default settings: MinimizeMotion with focus
// preservation on close.
func Default() Snapshot {
	return Snapshot{Policy: MinimizeMotion, CloseKeepsFocus: true}
}

// Snapshot returns the current settings.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Policy returns the active layout policy.
func (s *Store) Policy() LayoutPolicy {
	return s.Snapshot().Policy
}

// CloseKeepsFocus returns the close focus flag.
func (s *Store) CloseKeepsFocus() bool {
	return s.Snapshot().CloseKeepsFocus
}

// SetPolicy sets the layout policy.
func (s *Store) SetPolicy(p LayoutPolicy) {
	s.update(func(snap *Snapshot) { snap.Policy = p })
}

// SetCloseKeepsFocus sets the close focus flag.
func (s *Store) SetCloseKeepsFocus(v bool) {
	s.update(func(snap *Snapshot) { snap.CloseKeepsFocus = v })
}

// Apply replaces both settings at once.
func (s *Store) Apply(snap Snapshot) {
	s.update(func(cur *Snapshot) { *cur = snap })
}

// Cycle advances to the next policy and returns it.
func (s *Store) Cycle() LayoutPolicy {
	var next LayoutPolicy
	s.update(func(snap *Snapshot) {
		snap.Policy = snap.Policy.Next()
		next = snap.Policy
	})
	return next
}

// ToggleCloseKeepsFocus flips the close focus flag and returns the new value.
func (s *Store) ToggleCloseKeepsFocus() bool {
	var v bool
	s.update(func(snap *Snapshot) {
		snap.CloseKeepsFocus = !snap.CloseKeepsFocus
		v = snap.CloseKeepsFocus
	})
	return v
}

// OnChange registers an observer called after every effective change.
func (s *Store) OnChange(fn Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return &Subscription{id: id, store: s}
}

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	old := s.current
	fn(&s.current)
	cur := s.current
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	if old == cur {
		return
	}
	// Observers run outside the lock so they may read the store.
	for _, o := range observers {
		o(old, cur)
	}
}
