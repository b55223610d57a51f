// Package puzzle holds the progression flags of one desktop session.
//
// It is a flag bag, not a sequencer: each Mark* mutator flips its own
// one-way flag and knows nothing about the others. The vault is a one-way
// unlock; the archive is a locked/unlocked pair that transitions once.
//
// Two single-slot mailboxes carry deep-link locators between applications.
// A source app Puts a locator and opens the target; the target Takes it on
// its next refresh, which reads and clears in one step. A second Put before
// the Take overwrites the first.
package puzzle
