// Package roll provides the random draws used by combat resolution.
//
// All randomness flows through a Source handed in by the caller, so a seeded
// source replays a combat exactly.
package roll

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the subset of *rand.Rand combat needs.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// New returns a deterministic source for seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Range draws a uniform integer from the closed interval [low, high].
// Bounds given in the wrong order are swapped.
func Range(src Source, low, high int) int {
	if low > high {
		low, high = high, low
	}
	if low == high {
		return low
	}
	return low + src.Intn(high-low+1)
}

// Percent draws a uniform integer from [1, 100].
func Percent(src Source) int {
	return Range(src, 1, 100)
}

// Fixed replays scripted Intn results in order and then repeats the last one.
// Values are clamped into [0, n).
type Fixed struct {
	Values []int
	next   int
}

// NewFixed returns a Fixed source replaying values.
func NewFixed(values ...int) *Fixed {
	return &Fixed{Values: values}
}

// Percentages returns a Fixed source whose Percent draws are exactly rolls.
func Percentages(rolls ...int) *Fixed {
	values := make([]int, len(rolls))
	for i, r := range rolls {
		values[i] = r - 1
	}
	return NewFixed(values...)
}

func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("roll: invalid argument to Intn")
	}
	if len(f.Values) == 0 {
		return 0
	}
	idx := f.next
	if idx >= len(f.Values) {
		idx = len(f.Values) - 1
	} else {
		f.next++
	}
	v := f.Values[idx]
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Draws reports how many scripted values have been consumed.
func (f *Fixed) Draws() int {
	return f.next
}
