package barcode

import (
	"fmt"
	"sort"
)

// Index maps every sequence within the mismatch budget of a whitelist entry
// to that entry. It is read-only after NewIndex returns.
//
// When a variant is reachable from several entries the nearest one wins. A
// variant equally close to two or more entries is ambiguous: it is left out
// of the index and listed by Ambiguous. Entries always map to themselves.
type Index struct {
	budget    int
	length    int
	entries   map[string]string
	ambiguous []string
}

type candidate struct {
	canonical string
	dist      int
	tie       bool
}

// NewIndex expands every whitelist entry by budget mismatches.
func NewIndex(whitelist []string, budget int) (*Index, error) {
	if err := ValidateWhitelist(whitelist); err != nil {
		return nil, err
	}

	candidates := make(map[string]candidate)
	done := make(map[string]bool, len(whitelist))
	for _, bc := range whitelist {
		if done[bc] {
			continue
		}
		done[bc] = true

		variants, err := Mismatches(bc, budget)
		if err != nil {
			return nil, fmt.Errorf("whitelist entry %q: %w", bc, err)
		}
		for _, v := range variants {
			d := Hamming(v, bc)
			c, found := candidates[v]
			switch {
			case !found, d < c.dist:
				candidates[v] = candidate{canonical: bc, dist: d}
			case d == c.dist:
				c.tie = true
				candidates[v] = c
			}
		}
	}

	idx := &Index{
		budget:  budget,
		length:  len(whitelist[0]),
		entries: make(map[string]string, len(candidates)),
	}
	for v, c := range candidates {
		if c.tie {
			idx.ambiguous = append(idx.ambiguous, v)
			continue
		}
		idx.entries[v] = c.canonical
	}
	sort.Strings(idx.ambiguous)
	return idx, nil
}

// Lookup returns the whitelist entry seq corrects to.
func (idx *Index) Lookup(seq string) (string, bool) {
	bc, ok := idx.entries[seq]
	return bc, ok
}

// Len returns the number of sequences the index resolves.
func (idx *Index) Len() int { return len(idx.entries) }

// Budget returns the mismatch budget the index was built with.
func (idx *Index) Budget() int { return idx.budget }

// SeqLen returns the length of the indexed whitelist entries.
func (idx *Index) SeqLen() int { return idx.length }

// Ambiguous returns the sorted variants dropped because two or more entries
// were equally close to them.
func (idx *Index) Ambiguous() []string { return idx.ambiguous }
