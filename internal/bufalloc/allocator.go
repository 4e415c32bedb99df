// Package bufalloc assigns logical buffer slots to node outputs.
//
// Slots form a singly linked free list. The scheduler walks the activation
// order once per frame, allocating a slot when an output is produced and
// releasing it after its last consumer, so outputs whose live ranges do not
// overlap share storage. Only bookkeeping lives here; the physical sample
// storage is owned by buffer.Pool and indexed by the same SlotID.
package bufalloc

import "fmt"

// SlotID identifies a slot. It doubles as the index into buffer.Pool.
type SlotID int

// NoSlot marks an output that has no slot assigned.
const NoSlot SlotID = -1

// Slot is the allocator's record for one buffer.
type Slot struct {
	// MaxSize is the largest sample count any output assigned to this slot
	// has requested since the last Reset.
	MaxSize int
	// InUse is true while the slot is assigned to a live output.
	InUse bool
	// NextFree links free slots; NoSlot terminates the list.
	NextFree SlotID
}

// Allocator is a free-list slot allocator. The zero value is ready to use.
type Allocator struct {
	slots     []Slot
	firstFree SlotID
	inUse     int
	peak      int
	init      bool
}

// Reset forgets all slots. The slice is kept so steady-state frames do not
// allocate.
func (a *Allocator) Reset() {
	a.slots = a.slots[:0]
	a.firstFree = NoSlot
	a.inUse = 0
	a.peak = 0
	a.init = true
}

// Allocate returns a free slot able to hold size samples, reusing the head
// of the free list when possible.
func (a *Allocator) Allocate(size int) SlotID {
	if !a.init {
		a.Reset()
	}
	a.inUse++
	if a.inUse > a.peak {
		a.peak = a.inUse
	}

	if id := a.firstFree; id != NoSlot {
		s := &a.slots[id]
		if size > s.MaxSize {
			s.MaxSize = size
		}
		a.firstFree = s.NextFree
		s.InUse = true
		s.NextFree = NoSlot
		return id
	}

	a.slots = append(a.slots, Slot{MaxSize: size, InUse: true, NextFree: NoSlot})
	return SlotID(len(a.slots) - 1)
}

// Deallocate returns id to the free list. Releasing a slot that is not in
// use is a scheduler bug and panics.
func (a *Allocator) Deallocate(id SlotID) {
	s := &a.slots[id]
	if !s.InUse {
		panic(fmt.Sprintf("bufalloc: slot %d released while free", id))
	}
	s.InUse = false
	s.NextFree = a.firstFree
	a.firstFree = id
	a.inUse--
}

// Len reports how many distinct slots were created since the last Reset.
func (a *Allocator) Len() int {
	return len(a.slots)
}

// Slot returns the record for id.
func (a *Allocator) Slot(id SlotID) Slot {
	return a.slots[id]
}

// InUse reports the number of currently allocated slots.
func (a *Allocator) InUse() int {
	return a.inUse
}

// Peak reports the highest number of simultaneously allocated slots since
// the last Reset.
func (a *Allocator) Peak() int {
	return a.peak
}
