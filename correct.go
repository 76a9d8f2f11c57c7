package barcode

import (
	"fmt"
	"strings"
)

// Result is the outcome of correcting one read. When Rejected is set at least
// one barcode segment had no match and Barcode and UMI are empty.
type Result struct {
	Barcode  string
	UMI      string
	Rejected bool
}

// Correct looks up each cell barcode segment of read in the index at the same
// position of indices and joins the canonical segments. The UMI segments are
// joined as observed.
//
// A read shorter than the layout fails with ErrOutOfBounds and is never
// reported as rejected. Every entry of indices must be non-nil.
func Correct(read string, p *Pattern, indices []*Index) (Result, error) {
	if len(read) < p.Len() {
		return Result{}, fmt.Errorf("%w: length %d, layout %s needs %d",
			ErrOutOfBounds, len(read), p, p.Len())
	}
	segs, err := p.Slice(read, CellBarcode)
	if err != nil {
		return Result{}, err
	}
	if len(segs) != len(indices) {
		return Result{}, fmt.Errorf("%d barcode segments but %d indices", len(segs), len(indices))
	}

	var bc strings.Builder
	for i, seg := range segs {
		if indices[i] == nil {
			return Result{}, fmt.Errorf("no index for cell barcode segment %d", i)
		}
		canonical, ok := indices[i].Lookup(seg)
		if !ok {
			return Result{Rejected: true}, nil
		}
		bc.WriteString(canonical)
	}

	umis, err := p.Slice(read, UMI)
	if err != nil {
		return Result{}, err
	}
	return Result{Barcode: bc.String(), UMI: strings.Join(umis, "")}, nil
}

// Corrector pairs a pattern with one index per cell barcode range. It holds
// no mutable state and may be shared between goroutines.
type Corrector struct {
	pattern *Pattern
	indices []*Index
}

// NewCorrector builds a single index from whitelist and shares it across all
// cell barcode ranges of p.
func NewCorrector(p *Pattern, whitelist []string, budget int) (*Corrector, error) {
	idx, err := NewIndex(whitelist, budget)
	if err != nil {
		return nil, err
	}
	indices := make([]*Index, len(p.Regions(CellBarcode)))
	for i := range indices {
		indices[i] = idx
	}
	return NewCorrectorWithIndices(p, indices)
}

// NewCorrectorWithIndices uses indices[i] for the i-th cell barcode range.
func NewCorrectorWithIndices(p *Pattern, indices []*Index) (*Corrector, error) {
	ranges := p.Regions(CellBarcode)
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: %s declares no cell barcode", ErrInvalidLayout, p)
	}
	if len(ranges) != len(indices) {
		return nil, fmt.Errorf("layout %s has %d cell barcode ranges, got %d indices", p, len(ranges), len(indices))
	}
	for i, r := range ranges {
		if indices[i] == nil {
			return nil, fmt.Errorf("no index for cell barcode range %d", i)
		}
		if indices[i].SeqLen() != r.Len() {
			return nil, fmt.Errorf("%w: entries have length %d, cell barcode range %d has length %d",
				ErrInvalidWhitelist, indices[i].SeqLen(), i, r.Len())
		}
	}
	return &Corrector{pattern: p, indices: indices}, nil
}

// Pattern returns the layout the corrector slices reads with.
func (c *Corrector) Pattern() *Pattern { return c.pattern }

// Indices returns the index used for each cell barcode range.
func (c *Corrector) Indices() []*Index { return c.indices }

// Correct corrects one read, see Correct.
func (c *Corrector) Correct(read string) (Result, error) {
	return Correct(read, c.pattern, c.indices)
}
