package barcode

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBudgetExceedsLength is returned when more mismatches are requested than
// a sequence has positions.
var ErrBudgetExceedsLength = errors.New("mismatch budget exceeds sequence length")

// Alphabet holds the symbols a position may be substituted with.
var Alphabet = []byte{'A', 'C', 'G', 'T', 'N'}

// Mismatches returns, in sorted order, every sequence over Alphabet within
// Hamming distance budget of seq, seq included.
//
// Every subset of exactly budget positions is chosen and each chosen position
// runs over the whole alphabet, so the work grows as C(len, budget)*5^budget.
// Keep budget at 1, 2 at most.
func Mismatches(seq string, budget int) ([]string, error) {
	if budget < 0 {
		return nil, fmt.Errorf("negative mismatch budget %d", budget)
	}
	if budget > len(seq) {
		return nil, fmt.Errorf("%w: %d > len(%q)", ErrBudgetExceedsLength, budget, seq)
	}

	seen := make(map[string]struct{}) // avoid double-counting
	buf := []byte(seq)
	positions := make([]int, budget)
	for i := range positions {
		positions[i] = i
	}
	for {
		substitute(buf, positions, seen)
		if !nextCombination(positions, len(seq)) {
			break
		}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// substitute fills every position in positions with every alphabet symbol
// and records the results. buf is restored before returning.
func substitute(buf []byte, positions []int, seen map[string]struct{}) {
	if len(positions) == 0 {
		seen[string(buf)] = struct{}{}
		return
	}
	pos := positions[0]
	orig := buf[pos]
	for _, c := range Alphabet {
		buf[pos] = c
		substitute(buf, positions[1:], seen)
	}
	buf[pos] = orig
}

// nextCombination advances idx to the next k-subset of [0, n) in
// lexicographic order and reports whether there was one.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

// Hamming returns the number of positions at which a and b differ.
// It panics if the lengths differ.
func Hamming(a, b string) int {
	if len(a) != len(b) {
		panic("Hamming: length mismatch")
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
