package puzzle

import (
	"errors"
	"strings"
	"sync"

	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Flag names reported to observers
const (
	FlagV               = "found_v"
	FlagA               = "found_a"
	FlagU               = "found_u"
	FlagL               = "found_l"
	FlagT               = "found_t"
	FlagOrderSeen       = "order_seen"
	FlagVaultUnlocked   = "vault_unlocked"
	FlagArchiveUnlocked = "archive_unlocked"
	FlagReset           = "reset"
)

// ErrUnknownLetter is returned by MarkFound for a letter outside V, A, U, L, T
var ErrUnknownLetter = errors.New("unknown clue letter")

// Observer is told about every flag that actually changed
type Observer func(flag string)

// Store is the puzzle state of one workspace
type Store struct {
	mu       sync.RWMutex
	state    types.PuzzleState
	observer Observer

	// Photo carries "<album>/<filename-substring>" locators
	Photo Mailbox
	// File carries "<folder>/.../<filename>" or bare filename locators
	File Mailbox
}

// NewStore creates a store in its initial state
func NewStore() *Store {
	return &Store{state: initialState()}
}

func initialState() types.PuzzleState {
	return types.PuzzleState{ArchiveLocked: true}
}

// SetObserver installs a change observer
func (s *Store) SetObserver(fn Observer) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

func (s *Store) flip(flag string, get func(*types.PuzzleState) *bool) bool {
	s.mu.Lock()
	p := get(&s.state)
	if *p {
		s.mu.Unlock()
		return false
	}
	*p = true
	obs := s.observer
	s.mu.Unlock()

	if obs != nil {
		obs(flag)
	}
	return true
}

func (s *Store) MarkVFound() bool {
	return s.flip(FlagV, func(st *types.PuzzleState) *bool { return &st.FoundV })
}

func (s *Store) MarkAFound() bool {
	return s.flip(FlagA, func(st *types.PuzzleState) *bool { return &st.FoundA })
}

func (s *Store) MarkUFound() bool {
	return s.flip(FlagU, func(st *types.PuzzleState) *bool { return &st.FoundU })
}

func (s *Store) MarkLFound() bool {
	return s.flip(FlagL, func(st *types.PuzzleState) *bool { return &st.FoundL })
}

func (s *Store) MarkTFound() bool {
	return s.flip(FlagT, func(st *types.PuzzleState) *bool { return &st.FoundT })
}

// MarkFound flips the flag for one clue letter
func (s *Store) MarkFound(letter string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "V":
		return s.MarkVFound(), nil
	case "A":
		return s.MarkAFound(), nil
	case "U":
		return s.MarkUFound(), nil
	case "L":
		return s.MarkLFound(), nil
	case "T":
		return s.MarkTFound(), nil
	}
	return false, ErrUnknownLetter
}

// MarkOrderSeen records that the calendar hint was opened
func (s *Store) MarkOrderSeen() bool {
	return s.flip(FlagOrderSeen, func(st *types.PuzzleState) *bool { return &st.OrderSeen })
}

// UnlockVault reveals the archive icon
func (s *Store) UnlockVault() bool {
	return s.flip(FlagVaultUnlocked, func(st *types.PuzzleState) *bool { return &st.VaultUnlocked })
}

// UnlockArchive performs the locked to unlocked transition once
func (s *Store) UnlockArchive() bool {
	s.mu.Lock()
	if s.state.ArchiveUnlocked {
		s.mu.Unlock()
		return false
	}
	s.state.ArchiveLocked = false
	s.state.ArchiveUnlocked = true
	obs := s.observer
	s.mu.Unlock()

	if obs != nil {
		obs(FlagArchiveUnlocked)
	}
	return true
}

// VaultUnlocked reports the vault flag
func (s *Store) VaultUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.VaultUnlocked
}

// ArchiveUnlocked reports the archive flag
func (s *Store) ArchiveUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ArchiveUnlocked
}

// Snapshot returns a copy of the flags and pending locators
func (s *Store) Snapshot() types.PuzzleState {
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()

	st.PhotoDeepLink, _ = s.Photo.Peek()
	st.FileDeepLink, _ = s.File.Peek()
	return st
}

// Reset restores the initial state and empties both mailboxes
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = initialState()
	obs := s.observer
	s.mu.Unlock()

	s.Photo.Clear()
	s.File.Clear()
	if obs != nil {
		obs(FlagReset)
	}
}
