package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifest(t *testing.T) {
	input := `id,name,category,count
# stacked crystals from the mog safe
4096,Fire Crystal,Crystals,12
640,Copper Ore,Ore
514,Airship Pass,Key Items
`
	items, err := ReadManifest(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 3, "header row is skipped")

	assert.Equal(t, 4096, items[0].ID)
	assert.Equal(t, "Fire Crystal", items[0].Name)
	assert.Equal(t, "Crystals", items[0].Category)
	assert.Equal(t, 12, items[0].Count)

	assert.Equal(t, "Ore", items[1].Category)
	assert.Equal(t, 1, items[1].Count, "missing count defaults to 1")

	assert.Equal(t, "Key Items", items[2].Category)
	assert.False(t, items[2].Marketable())
}

func TestReadManifestSkipsMalformedRows(t *testing.T) {
	input := `4096,Fire Crystal
not-a-number,Bad Row
4097
640,Copper Ore,Ore,not-a-count
`
	items, err := ReadManifest(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Fire Crystal", items[0].Name)
	assert.Equal(t, 1, items[1].Count, "unparseable count falls back to 1")
}

func TestReadManifestEmpty(t *testing.T) {
	items, err := ReadManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest("/no/such/manifest.csv")
	assert.Error(t, err)
}
