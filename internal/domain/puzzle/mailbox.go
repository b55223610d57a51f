package puzzle

import "sync"

// Mailbox is a single-slot, last-write-wins locator slot
type Mailbox struct {
	mu    sync.Mutex
	value string
	full  bool
}

// Put stores a locator, replacing any unread one. An empty locator clears the slot.
func (b *Mailbox) Put(locator string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = locator
	b.full = locator != ""
}

// Take reads and clears the slot
func (b *Mailbox) Take() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.value, b.full
	b.value, b.full = "", false
	return v, ok
}

// Peek reads without clearing
func (b *Mailbox) Peek() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.full
}

// Clear empties the slot
func (b *Mailbox) Clear() {
	b.Put("")
}
