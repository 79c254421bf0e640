package catalog

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorward/dailytarot/internal/domain"
)

func testFS(names ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, name := range names {
		fsys[name] = &fstest.MapFile{Data: []byte("img")}
	}
	return fsys
}

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewSortsAndFilters(t *testing.T) {
	t.Parallel()

	fsys := testFS("zeta.jpg", "alpha.png", "beta.jpeg", "notes.txt", "deck.toml")
	cat, err := New(fsys, fixedRand())
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha.png", "beta.jpeg", "zeta.jpg"}, cat.List(),
		"assets must be sorted and non-image files ignored")
	assert.Equal(t, 3, cat.Len())
}

func TestNewEmptyCatalog(t *testing.T) {
	t.Parallel()

	_, err := New(testFS("readme.md"), fixedRand())
	assert.ErrorIs(t, err, ErrCatalogEmpty)
}

func TestDrawThreeInsufficientCards(t *testing.T) {
	t.Parallel()

	cat, err := New(testFS("one.jpg", "two.jpg"), fixedRand())
	require.NoError(t, err)

	_, err = cat.DrawThree()
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func TestDrawThreeNoDuplicates(t *testing.T) {
	t.Parallel()

	cat, err := New(testFS("a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"), fixedRand())
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		draw, err := cat.DrawThree()
		require.NoError(t, err)

		seen := map[int]bool{}
		for _, choice := range draw {
			assert.GreaterOrEqual(t, choice.AssetIndex, 0)
			assert.Less(t, choice.AssetIndex, cat.Len())
			assert.False(t, seen[choice.AssetIndex], "draw %d repeated an asset index", i)
			seen[choice.AssetIndex] = true
		}
	}
}

func TestDrawThreeReversalIsRoughlyFair(t *testing.T) {
	t.Parallel()

	cat, err := New(testFS("a.jpg", "b.jpg", "c.jpg", "d.jpg"), fixedRand())
	require.NoError(t, err)

	const trials = 4000
	reversed := [3]int{}
	for i := 0; i < trials; i++ {
		draw, err := cat.DrawThree()
		require.NoError(t, err)
		for slot, choice := range draw {
			if choice.Reversed {
				reversed[slot]++
			}
		}
	}

	for slot, count := range reversed {
		ratio := float64(count) / trials
		assert.InDelta(t, 0.5, ratio, 0.05,
			"slot %d reversal ratio %f should be near the coin flip", slot, ratio)
	}
}

func TestAssetName(t *testing.T) {
	t.Parallel()

	cat, err := New(testFS("a.jpg", "b.jpg", "c.jpg"), fixedRand())
	require.NoError(t, err)

	name, err := cat.AssetName(1)
	require.NoError(t, err)
	assert.Equal(t, "b.jpg", name)

	_, err = cat.AssetName(3)
	assert.Error(t, err)
	_, err = cat.AssetName(-1)
	assert.Error(t, err)
}

func TestCardIDForAsset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		asset string
		want  domain.CardID
	}{
		{"7ofcups_upright.jpg", "7ofcups"},
		{"7ofcups_reversed.jpg", "7ofcups"},
		{"TheMagician.PNG", "themagician"},
		{"decks/rider/aceofwands.jpeg", "aceofwands"},
		{"queenofswords.png", "queenofswords"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CardIDForAsset(tt.asset), "asset %s", tt.asset)
	}
}
