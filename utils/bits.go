package utils

import (
	"math/bits"
)

const bitSetSize = 64 // Number of bits in a uint64

// BitSet is a bit set indexed by small non-negative integers such as cell
// handles. It grows on Set, so callers don't need to know the largest index
// up front.
type BitSet struct {
	bits []uint64
}

// NewBitSet creates a BitSet with room for size bits before it has to grow.
func NewBitSet(size int) *BitSet {
	Assert(size >= 0, "negative bit set size")
	return &BitSet{bits: make([]uint64, (size+bitSetSize-1)/bitSetSize)}
}

// addr return the index of bit array containing the bit at idx and offset of
// givent bit in that array.
func (s *BitSet) addr(idx int) (int, int) {
	return idx / bitSetSize, idx % bitSetSize
}

// Set sets the bit at the given idx to 1.
func (s *BitSet) Set(idx int) {
	Assert(idx >= 0, "Index out of bounds")
	i, offset := s.addr(idx)
	if i >= len(s.bits) {
		grown := make([]uint64, i+1)
		copy(grown, s.bits)
		s.bits = grown
	}
	s.bits[i] |= 1 << offset
}

// TestAndSet sets the bit at idx and reports whether it was already set.
func (s *BitSet) TestAndSet(idx int) bool {
	if s.IsSet(idx) {
		return true
	}
	s.Set(idx)
	return false
}

// Unset clears the bit at the given idx. Bits past the current capacity are
// already clear.
func (s *BitSet) Unset(idx int) {
	Assert(idx >= 0, "Index out of bounds")
	i, offset := s.addr(idx)
	if i >= len(s.bits) {
		return
	}
	s.bits[i] &^= 1 << offset
}

// IsSet returns if bit at given idx is set
func (s *BitSet) IsSet(idx int) bool {
	Assert(idx >= 0, "Index out of bounds")
	i, offset := s.addr(idx)
	if i >= len(s.bits) {
		return false
	}
	return s.bits[i]&(1<<offset) != 0
}

// Count counts the number of bits set
func (s *BitSet) Count() int {
	total := 0
	for _, word := range s.bits {
		total += bits.OnesCount64(word)
	}
	return total
}

// Clear unsets every bit but keeps the backing storage for reuse.
func (s *BitSet) Clear() {
	clear(s.bits)
}
