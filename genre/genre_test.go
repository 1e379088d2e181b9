package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniqlab/trackprint/dsp/spectral"
)

func TestProfileCount(t *testing.T) {
	assert.GreaterOrEqual(t, Count(), 35)
}

func TestEveryProfileCoversAllBands(t *testing.T) {
	for _, id := range IDs() {
		p, ok := Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, id, p.ID)
		assert.NotEmpty(t, p.Name, id)

		require.Len(t, p.Bands, len(spectral.StandardBands), id)
		for _, band := range spectral.StandardBands {
			target, ok := p.Bands[band.Name]
			require.True(t, ok, "%s missing band %s", id, band.Name)
			assert.LessOrEqual(t, target.MinDb, target.OptimalDb, "%s %s", id, band.Name)
			assert.LessOrEqual(t, target.OptimalDb, target.MaxDb, "%s %s", id, band.Name)
		}

		assert.Less(t, p.CrestFactor.Min, p.CrestFactor.Max, id)
		assert.Less(t, p.PLR.Min, p.PLR.Max, id)
		assert.Less(t, p.LUFS.Min, p.LUFS.Max, id)
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	_, ok := Lookup("techno")
	assert.True(t, ok)
	_, ok = Lookup("Techno")
	assert.False(t, ok)
	_, ok = Lookup("no-such-genre")
	assert.False(t, ok)
}

func TestLookupOrDefaultFallsBack(t *testing.T) {
	p := LookupOrDefault("no-such-genre")
	assert.Equal(t, DefaultID, p.ID)

	house := LookupOrDefault("house")
	assert.Equal(t, "house", house.ID)
}

func TestDefaultProfile(t *testing.T) {
	assert.Equal(t, DefaultID, Default().ID)
}

func TestIDsSorted(t *testing.T) {
	ids := IDs()
	require.NotEmpty(t, ids)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}
