package barcode

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCorrector(t *testing.T) *Corrector {
	t.Helper()
	c, err := NewCorrector(MustCompile("C4L2C4U3"), []string{"AAAA", "CCCC", "GGGG"}, 1)
	require.NoError(t, err)
	return c
}

func TestCorrect(t *testing.T) {
	c := newTestCorrector(t)

	type test struct {
		name string
		read string
		want Result
	}
	tests := []test{
		{"exact", "AAAA" + "TT" + "CCCC" + "ACG", Result{Barcode: "AAAACCCC", UMI: "ACG"}},
		{"one error per segment", "AAAT" + "TT" + "CCGC" + "ACG", Result{Barcode: "AAAACCCC", UMI: "ACG"}},
		{"umi kept as observed", "GGGG" + "AC" + "GGNG" + "NNN", Result{Barcode: "GGGGGGGG", UMI: "NNN"}},
		{"trailing bases ignored", "CCCC" + "TT" + "AAAA" + "TTT" + "TTTTTTTT", Result{Barcode: "CCCCAAAA", UMI: "TTT"}},
		{"first segment misses", "ATTA" + "TT" + "CCCC" + "ACG", Result{Rejected: true}},
		{"second segment misses", "AAAA" + "TT" + "ACGT" + "ACG", Result{Rejected: true}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := c.Correct(test.read)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCorrectShortRead(t *testing.T) {
	c := newTestCorrector(t)

	for _, read := range []string{"", "AAAATTCCCC", "AAAATTCCCCAC", "TTTTTTCC"} {
		got, err := c.Correct(read)
		assert.ErrorIs(t, err, ErrOutOfBounds, "read %q", read)
		assert.False(t, got.Rejected, "read %q", read)
	}
}

func TestCorrectIdempotent(t *testing.T) {
	c := newTestCorrector(t)

	first, err := c.Correct("AANA" + "TT" + "CCCT" + "GAT")
	require.NoError(t, err)
	require.False(t, first.Rejected)

	again, err := c.Correct(first.Barcode[:4] + "TT" + first.Barcode[4:] + first.UMI)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCorrectPerRangeIndices(t *testing.T) {
	p := MustCompile("C4L1C3U2")
	first, err := NewIndex([]string{"AAAA", "TTTT"}, 1)
	require.NoError(t, err)
	second, err := NewIndex([]string{"CCC"}, 0)
	require.NoError(t, err)

	c, err := NewCorrectorWithIndices(p, []*Index{first, second})
	require.NoError(t, err)
	assert.Equal(t, p, c.Pattern())
	assert.Len(t, c.Indices(), 2)

	got, err := c.Correct("TTAT" + "G" + "CCC" + "GG")
	require.NoError(t, err)
	assert.Equal(t, Result{Barcode: "TTTTCCC", UMI: "GG"}, got)

	got, err = c.Correct("TTAT" + "G" + "CCA" + "GG")
	require.NoError(t, err)
	assert.True(t, got.Rejected)

	got, err = Correct("AAAA"+"G"+"CCC"+"TT", p, []*Index{first, second})
	require.NoError(t, err)
	assert.Equal(t, "AAAACCC", got.Barcode)

	_, err = Correct("AAAA"+"G"+"CCC"+"TT", p, []*Index{first})
	assert.Error(t, err)

	assert.NotPanics(t, func() {
		_, err = Correct("AAAA"+"G"+"CCC"+"TT", p, []*Index{first, nil})
	})
	assert.ErrorContains(t, err, "no index")

	_, err = NewCorrectorWithIndices(p, []*Index{nil, second})
	assert.ErrorContains(t, err, "no index")
}

func TestNewCorrectorErrors(t *testing.T) {
	idx, err := NewIndex([]string{"AAAA"}, 1)
	require.NoError(t, err)

	_, err = NewCorrectorWithIndices(MustCompile("C4C4"), []*Index{idx})
	assert.Error(t, err)

	_, err = NewCorrectorWithIndices(MustCompile("C5"), []*Index{idx})
	assert.ErrorIs(t, err, ErrInvalidWhitelist)

	_, err = NewCorrector(MustCompile("L4U4"), []string{"AAAA"}, 1)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = NewCorrector(MustCompile("C4"), []string{"AAAA"}, 5)
	assert.ErrorIs(t, err, ErrBudgetExceedsLength)
}

func TestCorrectorShared(t *testing.T) {
	c := newTestCorrector(t)
	assert.Same(t, c.Indices()[0], c.Indices()[1])

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				got, err := c.Correct("AAAT" + "TT" + "CCGC" + "ACG")
				assert.NoError(t, err)
				assert.Equal(t, "AAAACCCC", got.Barcode)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkCorrect(b *testing.B) {
	wl, _ := Mismatches("ACGTACGT", 2)
	c, err := NewCorrector(MustCompile("C8L16C8L16C8L1U12T18"), wl, 1)
	if err != nil {
		b.Fatal(err)
	}
	read := wl[0] + "ATCCACGTGCTTGAGA" + wl[1] + "CGAACATGTAGGTCTC" + wl[2] + "C" + "GACTACGTATTA" + "TTTTTTTTTTTTTTTTTT"
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		c.Correct(read)
	}
}
