package tileset

import (
	"testing"

	"github.com/milk9111/tileset-editor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetProxyThenResolve(t *testing.T) {
	cases := []struct {
		name string
		tier Tier
		from TileRef
		to   TileRef
	}{
		{"source", TierSource, SourceRef(3), SourceRef(7)},
		{"coords", TierCoords, CoordsRef(3, common.V2i(1, 2)), CoordsRef(7, common.V2i(0, 0))},
		{"alternative", TierAlternative, AlternativeRef(3, common.V2i(1, 2), 1), AlternativeRef(7, common.V2i(4, 4), 2)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := New()
			_, existed, err := ts.SetProxy(c.tier, c.from, c.to)
			require.NoError(t, err)
			assert.False(t, existed)

			got, ok := ts.Resolve(c.from, c.tier)
			require.True(t, ok)
			assert.Equal(t, c.to.SourceID, got.SourceID)
			if c.tier >= TierCoords {
				assert.Equal(t, c.to.Coords, got.Coords)
			}
			if c.tier == TierAlternative {
				assert.Equal(t, c.to.Alternative, got.Alternative)
			}
		})
	}
}

func TestSetProxyReturnsPrevious(t *testing.T) {
	ts := New()
	_, _, err := ts.SetProxy(TierSource, SourceRef(3), SourceRef(7))
	require.NoError(t, err)

	prev, existed, err := ts.SetProxy(TierSource, SourceRef(3), SourceRef(8))
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, 7, prev.SourceID)

	to, ok := ts.Proxy(TierSource, SourceRef(3))
	require.True(t, ok)
	assert.Equal(t, 8, to.SourceID)
}

func TestSetProxyRejectsSelfAndIncompleteKeys(t *testing.T) {
	ts := New()
	c := common.V2i(2, 3)

	_, _, err := ts.SetProxy(TierSource, SourceRef(1), SourceRef(1))
	assert.ErrorIs(t, err, ErrSelfProxy)
	_, _, err = ts.SetProxy(TierCoords, CoordsRef(1, c), CoordsRef(1, c))
	assert.ErrorIs(t, err, ErrSelfProxy)
	_, _, err = ts.SetProxy(TierAlternative, AlternativeRef(1, c, 2), AlternativeRef(1, c, 2))
	assert.ErrorIs(t, err, ErrSelfProxy)

	_, _, err = ts.SetProxy(TierCoords, SourceRef(1), CoordsRef(2, c))
	assert.ErrorIs(t, err, ErrInvalidID)
	_, _, err = ts.SetProxy(Tier(7), SourceRef(1), SourceRef(2))
	assert.ErrorIs(t, err, ErrInvalidTier)

	assert.Zero(t, ts.ProxyCount())
}

func TestRemoveAbsentProxyIsNoop(t *testing.T) {
	ts := New()
	_, _, err := ts.SetProxy(TierSource, SourceRef(1), SourceRef(2))
	require.NoError(t, err)

	for _, tier := range Tiers {
		ts.RemoveProxy(tier, AlternativeRef(9, common.V2i(0, 0), 0))
	}
	assert.Equal(t, []ProxyEntry{{Tier: TierSource, From: SourceRef(1), To: SourceRef(2)}}, ts.AllProxies())
}

func TestResolveFallsBackToSourceLevel(t *testing.T) {
	ts := New()
	_, _, err := ts.SetProxy(TierSource, SourceRef(5), SourceRef(9))
	require.NoError(t, err)

	got, ok := ts.Resolve(CoordsRef(5, common.V2i(2, 3)), TierCoords)
	require.True(t, ok)
	assert.Equal(t, 9, got.SourceID)
	assert.Equal(t, common.V2i(2, 3), got.Coords)
}

func TestResolvePrefersMoreSpecificTier(t *testing.T) {
	ts := New()
	_, _, err := ts.SetProxy(TierSource, SourceRef(5), SourceRef(9))
	require.NoError(t, err)
	_, _, err = ts.SetProxy(TierCoords, CoordsRef(5, common.V2i(2, 3)), CoordsRef(9, common.V2i(4, 4)))
	require.NoError(t, err)

	got, ok := ts.Resolve(CoordsRef(5, common.V2i(2, 3)), TierCoords)
	require.True(t, ok)
	assert.Equal(t, CoordsRef(9, common.V2i(4, 4)), got)

	t.Run("alternative_keeps_alt_on_coords_hit", func(t *testing.T) {
		got := ts.MapTileProxy(5, common.V2i(2, 3), 4)
		assert.Equal(t, AlternativeRef(9, common.V2i(4, 4), 4), got)
	})

	t.Run("source_only_request_ignores_coords_tier", func(t *testing.T) {
		got, ok := ts.Resolve(CoordsRef(5, common.V2i(2, 3)), TierSource)
		require.True(t, ok)
		assert.Equal(t, CoordsRef(9, common.V2i(2, 3)), got)
	})
}

func TestResolveDoesNotChain(t *testing.T) {
	ts := New()
	_, _, err := ts.SetProxy(TierSource, SourceRef(1), SourceRef(2))
	require.NoError(t, err)
	_, _, err = ts.SetProxy(TierSource, SourceRef(2), SourceRef(3))
	require.NoError(t, err)

	got, ok := ts.Resolve(SourceRef(1), TierSource)
	require.True(t, ok)
	assert.Equal(t, 2, got.SourceID)

	_, ok = ts.Resolve(SourceRef(4), TierSource)
	assert.False(t, ok)
}

func TestCleanupInvalidTileProxies(t *testing.T) {
	ts := New()
	atlas := NewAtlasSource("tiles.png", common.V2i(16, 16))
	require.NoError(t, atlas.CreateTile(common.V2i(0, 0)))
	require.NoError(t, atlas.CreateTile(common.V2i(1, 0)))
	_, err := atlas.CreateAlternativeTile(common.V2i(1, 0), -1)
	require.NoError(t, err)
	_, err = ts.AddSource(atlas, 0)
	require.NoError(t, err)
	_, err = ts.AddSource(NewAtlasSource("other.png", common.V2i(16, 16)), 1)
	require.NoError(t, err)

	mustSet := func(tier Tier, from, to TileRef) {
		t.Helper()
		_, _, err := ts.SetProxy(tier, from, to)
		require.NoError(t, err)
	}
	mustSet(TierSource, SourceRef(0), SourceRef(1))
	mustSet(TierSource, SourceRef(4), SourceRef(1))
	mustSet(TierCoords, CoordsRef(0, common.V2i(0, 0)), CoordsRef(0, common.V2i(1, 0)))
	mustSet(TierCoords, CoordsRef(0, common.V2i(0, 5)), CoordsRef(0, common.V2i(1, 0)))
	mustSet(TierAlternative, AlternativeRef(0, common.V2i(1, 0), 0), AlternativeRef(0, common.V2i(1, 0), 1))
	mustSet(TierAlternative, AlternativeRef(0, common.V2i(0, 0), 0), AlternativeRef(0, common.V2i(1, 0), 9))

	removed := ts.CleanupInvalidTileProxies()
	assert.Equal(t, 3, removed)
	first := ts.AllProxies()
	assert.Len(t, first, 3)
	for _, e := range first {
		assert.True(t, ts.IsProxyValid(e), e.String())
	}

	assert.Zero(t, ts.CleanupInvalidTileProxies())
	assert.Equal(t, first, ts.AllProxies())
}

func TestClearTileProxies(t *testing.T) {
	ts := New()
	_, _, err := ts.SetProxy(TierSource, SourceRef(1), SourceRef(2))
	require.NoError(t, err)
	_, _, err = ts.SetProxy(TierCoords, CoordsRef(1, common.V2i(0, 0)), CoordsRef(2, common.V2i(0, 0)))
	require.NoError(t, err)

	ts.ClearTileProxies()
	assert.Zero(t, ts.ProxyCount())
	assert.Empty(t, ts.AllProxies())
}
