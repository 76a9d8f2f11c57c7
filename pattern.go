// Package barcode extracts the regions of a fixed-layout read and corrects
// its cell barcode against a whitelist.
package barcode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidLayout is returned when a layout string does not match
	// ((C|L|U|T|N)\d+)+ or declares a zero length region.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrOutOfBounds is returned when a read is shorter than a declared region.
	ErrOutOfBounds = errors.New("read shorter than layout")
)

// RegionKind is the role of a range of bases within a read.
type RegionKind byte

const (
	CellBarcode RegionKind = 'C'
	Linker      RegionKind = 'L'
	UMI         RegionKind = 'U'
	PolyT       RegionKind = 'T'
	Placeholder RegionKind = 'N'
)

func (k RegionKind) String() string {
	switch k {
	case CellBarcode:
		return "CellBarcode"
	case Linker:
		return "Linker"
	case UMI:
		return "UMI"
	case PolyT:
		return "PolyT"
	case Placeholder:
		return "Placeholder"
	}
	return fmt.Sprintf("RegionKind(%q)", byte(k))
}

// Range is a half-open [Start, End) interval of read positions.
type Range struct {
	Start, End int
}

// Len returns the number of bases covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Segment is one declared region of a layout.
type Segment struct {
	Kind RegionKind
	Range
}

var (
	layoutRe = regexp.MustCompile(`^(?:[CLUTN]\d+)+$`)
	tokenRe  = regexp.MustCompile(`([CLUTN])(\d+)`)
)

// Pattern is a compiled layout. It is immutable and safe for concurrent use.
type Pattern struct {
	segments []Segment
	regions  map[RegionKind][]Range
	length   int
}

// Compile parses a layout such as "C8L16C8L16C8L1U12T18".
func Compile(layout string) (*Pattern, error) {
	if !layoutRe.MatchString(layout) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}

	p := &Pattern{regions: make(map[RegionKind][]Range)}
	cursor := 0
	for _, tok := range tokenRe.FindAllStringSubmatch(layout, -1) {
		kind := RegionKind(tok[1][0])
		length, err := strconv.Atoi(tok[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLayout, tok[0], err)
		}
		if length == 0 {
			return nil, fmt.Errorf("%w: zero length region %q", ErrInvalidLayout, tok[0])
		}
		if length > math.MaxInt-cursor {
			return nil, fmt.Errorf("%w: region %q overflows total length", ErrInvalidLayout, tok[0])
		}
		r := Range{Start: cursor, End: cursor + length}
		p.segments = append(p.segments, Segment{Kind: kind, Range: r})
		p.regions[kind] = append(p.regions[kind], r)
		cursor += length
	}
	p.length = cursor
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(layout string) *Pattern {
	p, err := Compile(layout)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the total number of bases declared by the layout.
func (p *Pattern) Len() int { return p.length }

// Segments returns every region in declaration order.
func (p *Pattern) Segments() []Segment { return p.segments }

// Regions returns the ranges of kind in declaration order, or nil if the
// layout does not declare it.
func (p *Pattern) Regions(kind RegionKind) []Range { return p.regions[kind] }

// Kinds returns the declared kinds in order of first appearance.
func (p *Pattern) Kinds() []RegionKind {
	var kinds []RegionKind
	seen := make(map[RegionKind]bool)
	for _, s := range p.segments {
		if !seen[s.Kind] {
			seen[s.Kind] = true
			kinds = append(kinds, s.Kind)
		}
	}
	return kinds
}

// Slice returns the substrings of read covered by each range of kind.
func (p *Pattern) Slice(read string, kind RegionKind) ([]string, error) {
	ranges := p.regions[kind]
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.End > len(read) {
			return nil, fmt.Errorf("%w: %v region [%d,%d) beyond read length %d",
				ErrOutOfBounds, kind, r.Start, r.End, len(read))
		}
		out = append(out, read[r.Start:r.End])
	}
	return out, nil
}

func (p *Pattern) String() string {
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte(byte(s.Kind))
		b.WriteString(strconv.Itoa(s.Len()))
	}
	return b.String()
}
