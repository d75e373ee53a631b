// Package replay stores self-play training examples.
package replay

import (
	"fmt"

	"selfplay/game"
)

// Entry is one training example: a position, the search's visit distribution and the game's outcome
// for the player to move
type Entry struct {
	State  game.State
	Policy []float32
	Value  float32
}

// Buffer keeps the most recent entries up to a fixed capacity, oldest first.
// Entries live in a ring: index i is stored at (head+i) mod capacity.
type Buffer struct {
	entries []Entry
	head    int
	size    int
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic(fmt.Sprintf("buffer capacity must be positive, got %d", capacity))
	}
	return &Buffer{entries: make([]Entry, capacity)}
}

func (b *Buffer) Len() int {
	return b.size
}

func (b *Buffer) Cap() int {
	return len(b.entries)
}

func (b *Buffer) slot(i int) int {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("buffer index %d out of range [0, %d)", i, b.size))
	}
	return (b.head + i) % len(b.entries)
}

func (b *Buffer) At(i int) Entry {
	return b.entries[b.slot(i)]
}

// Entries returns a copy of the stored entries, oldest first
func (b *Buffer) Entries() []Entry {
	out := make([]Entry, 0, b.size)
	n := min(b.size, len(b.entries)-b.head)
	out = append(out, b.entries[b.head:b.head+n]...)
	return append(out, b.entries[:b.size-n]...)
}

func (b *Buffer) SetValue(i int, value float32) {
	b.entries[b.slot(i)].Value = value
}

// MakeRoom evicts the oldest entries until k more fit.
// Asking for the whole capacity or more empties the buffer.
func (b *Buffer) MakeRoom(k int) {
	evict := min(b.size+k-len(b.entries), b.size)
	if evict <= 0 {
		return
	}
	for i := 0; i < evict; i++ {
		b.entries[b.slot(i)] = Entry{}
	}
	b.head = (b.head + evict) % len(b.entries)
	b.size -= evict
}

// Add appends an entry, evicting the oldest one when full. The policy is copied.
func (b *Buffer) Add(state game.State, policy []float32, value float32) {
	b.MakeRoom(1)
	b.entries[(b.head+b.size)%len(b.entries)] = Entry{
		State:  state,
		Policy: append([]float32(nil), policy...),
		Value:  value,
	}
	b.size++
}
