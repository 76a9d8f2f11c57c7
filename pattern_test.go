package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	type test struct {
		layout  string
		length  int
		regions map[RegionKind][]Range
	}

	tests := []test{
		{"C8", 8, map[RegionKind][]Range{CellBarcode: {{0, 8}}}},
		{"C8L16C8", 32, map[RegionKind][]Range{
			CellBarcode: {{0, 8}, {24, 32}},
			Linker:      {{8, 24}},
		}},
		{"C8L16C8L16C8L1U12T18", 87, map[RegionKind][]Range{
			CellBarcode: {{0, 8}, {24, 32}, {48, 56}},
			Linker:      {{8, 24}, {32, 48}, {56, 57}},
			UMI:         {{57, 69}},
			PolyT:       {{69, 87}},
		}},
		{"N2C10U10T30", 52, map[RegionKind][]Range{
			Placeholder: {{0, 2}},
			CellBarcode: {{2, 12}},
			UMI:         {{12, 22}},
			PolyT:       {{22, 52}},
		}},
	}

	for _, test := range tests {
		t.Run(test.layout, func(t *testing.T) {
			p, err := Compile(test.layout)
			require.NoError(t, err)
			assert.Equal(t, test.length, p.Len())
			for _, kind := range []RegionKind{CellBarcode, Linker, UMI, PolyT, Placeholder} {
				assert.Equal(t, test.regions[kind], p.Regions(kind), kind.String())
			}
			assert.Equal(t, test.layout, p.String())
		})
	}
}

func TestCompileInvalid(t *testing.T) {
	for _, layout := range []string{
		"", "C", "8", "C0", "C8L0", "X8", "C8L", "c8", "C8 L16", "C8-L16", "C99999999999999999999",
		"L9223372036854775807L9223372036854775807C4", "C4L9223372036854775807",
	} {
		_, err := Compile(layout)
		assert.ErrorIs(t, err, ErrInvalidLayout, "layout %q", layout)
	}
}

func TestCompilePartitions(t *testing.T) {
	for _, layout := range []string{"C8", "C8L16C8", "C8L16C8L16C8L1U12T18", "U1U1U1", "T3N1C2L5U4"} {
		p := MustCompile(layout)
		cursor := 0
		for _, s := range p.Segments() {
			assert.Equal(t, cursor, s.Start, "layout %s: gap or overlap at %d", layout, cursor)
			assert.Greater(t, s.End, s.Start)
			cursor = s.End
		}
		assert.Equal(t, p.Len(), cursor, layout)
	}
}

func TestKinds(t *testing.T) {
	p := MustCompile("C8L16C8L1U12T18")
	assert.Equal(t, []RegionKind{CellBarcode, Linker, UMI, PolyT}, p.Kinds())
}

func TestSlice(t *testing.T) {
	p := MustCompile("C4L2C4U3")
	read := "AAAA" + "TT" + "CCCC" + "GTA" + "TTTTT"

	bcs, err := p.Slice(read, CellBarcode)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAA", "CCCC"}, bcs)

	umis, err := p.Slice(read, UMI)
	require.NoError(t, err)
	assert.Equal(t, []string{"GTA"}, umis)

	none, err := p.Slice(read, PolyT)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = p.Slice("AAAATTCC", CellBarcode)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
