package session

import "sync"

// Store tracks the currently selected recipe by identifier. The zero value
// is ready to use and holds no selection.
type Store struct {
	mu       sync.Mutex
	recipeID int64
	selected bool
}

// Select points the session at the given recipe.
func (s *Store) Select(recipeID int64) {
	if recipeID <= 0 {
		return
	}
	s.mu.Lock()
	s.recipeID = recipeID
	s.selected = true
	s.mu.Unlock()
}

// Selected returns the selected recipe identifier, if any.
func (s *Store) Selected() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipeID, s.selected
}

// Clear drops the selection. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	s.recipeID = 0
	s.selected = false
	s.mu.Unlock()
}

// ClearIf drops the selection only when it points at recipeID.
func (s *Store) ClearIf(recipeID int64) {
	s.mu.Lock()
	if s.selected && s.recipeID == recipeID {
		s.recipeID = 0
		s.selected = false
	}
	s.mu.Unlock()
}
