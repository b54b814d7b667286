// Package dice provides the randomness abstraction shared by squad setup and
// combat resolution.
package dice

import "fmt"

// Source is the randomness provider for every draw in a battle.
//
// Implementations need not be safe for concurrent use; a battle is driven by a
// single goroutine.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a random int in the inclusive range [lo, hi].
//
// Precondition: lo <= hi; src must be non-nil.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("dice: Between called with lo %d > hi %d", lo, hi))
	}
	return lo + src.Intn(hi-lo+1)
}

// Shuffle permutes s in place with a Fisher-Yates pass, so every ordering is
// equally likely for a uniform src.
//
// Precondition: src must be non-nil.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Sample returns k distinct indices drawn without replacement from [0, n).
//
// k is clamped to [0, n].
//
// Postcondition: len(result) == min(max(k, 0), n); no index repeats.
func Sample(src Source, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: only the first k slots are settled.
	for i := 0; i < k; i++ {
		j := i + src.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
