package entities

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

const (
	// MinNumber and MaxNumber bound the 6/45 number pool.
	MinNumber = 1
	MaxNumber = 45

	// DrawSize is the count of main numbers in a draw.
	DrawSize = 6
)

// Combination5 is a sorted 5-number set. Being a fixed-size array it is
// comparable and usable directly as a map key, which is how all matching
// logic identifies "the same set of numbers" regardless of draw order.
type Combination5 [5]int

// Combination6 is a sorted 6-number set, comparable and map-key safe.
type Combination6 [6]int

// fiveOfSixIndices enumerates the 6 ways to pick 5 indices out of 6.
// Computed once; the decomposition below is on every analysis hot path.
var fiveOfSixIndices = combin.Combinations(6, 5)

// NewCombination6 normalizes a slice of 6 numbers into a sorted
// Combination6, rejecting wrong lengths, out-of-range values and
// duplicates.
func NewCombination6(numbers []int) (Combination6, error) {
	var c Combination6
	if len(numbers) != 6 {
		return c, fmt.Errorf("combination must have exactly 6 numbers, got %d", len(numbers))
	}
	sorted := make([]int, 6)
	copy(sorted, numbers)
	sort.Ints(sorted)
	for i, n := range sorted {
		if n < MinNumber || n > MaxNumber {
			return c, fmt.Errorf("number %d out of range [%d,%d]", n, MinNumber, MaxNumber)
		}
		if i > 0 && sorted[i-1] == n {
			return c, fmt.Errorf("duplicate number %d in combination", n)
		}
		c[i] = n
	}
	return c, nil
}

// NewCombination6From5AndBonus builds the sorted 6-set of a 5-subset
// plus a bonus number. This is the second-place derivation.
func NewCombination6From5AndBonus(five Combination5, bonus int) Combination6 {
	var c Combination6
	copy(c[:5], five[:])
	c[5] = bonus
	sort.Ints(c[:])
	return c
}

// Slice returns the combination as a freshly allocated sorted slice.
func (c Combination6) Slice() []int {
	out := make([]int, 6)
	copy(out, c[:])
	return out
}

// Contains reports whether n is one of the combination's numbers.
func (c Combination6) Contains(n int) bool {
	for _, v := range c {
		if v == n {
			return true
		}
	}
	return false
}

// Overlap counts numbers shared with another combination.
func (c Combination6) Overlap(other Combination6) int {
	shared := 0
	for _, n := range other {
		if c.Contains(n) {
			shared++
		}
	}
	return shared
}

// FiveSubsets returns the 6 five-number subsets of the combination.
// The input is sorted and the index sets are increasing, so every
// subset comes out sorted as well.
func (c Combination6) FiveSubsets() [6]Combination5 {
	var subsets [6]Combination5
	for i, idx := range fiveOfSixIndices {
		var s Combination5
		for j, k := range idx {
			s[j] = c[k]
		}
		subsets[i] = s
	}
	return subsets
}

// Slice returns the combination as a freshly allocated sorted slice.
func (c Combination5) Slice() []int {
	out := make([]int, 5)
	copy(out, c[:])
	return out
}
