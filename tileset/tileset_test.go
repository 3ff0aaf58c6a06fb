package tileset

import (
	"testing"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRegistry(t *testing.T) {
	ts := New()
	a, err := ts.AddSource(NewAtlasSource("a.png", common.V2i(16, 16)), -1)
	require.NoError(t, err)
	b, err := ts.AddSource(NewScenesCollectionSource(), 5)
	require.NoError(t, err)
	c, err := ts.AddSource(NewAtlasSource("c.png", common.V2i(16, 16)), -1)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 5, 6}, []int{a, b, c})
	assert.Equal(t, []int{0, 5, 6}, ts.SourceIDs())

	_, err = ts.AddSource(NewAtlasSource("d.png", common.V2i(16, 16)), 5)
	assert.ErrorIs(t, err, ErrIDCollision)

	t.Run("set_source_id", func(t *testing.T) {
		assert.ErrorIs(t, ts.SetSourceID(0, 5), ErrIDCollision)
		assert.ErrorIs(t, ts.SetSourceID(42, 1), ErrSourceNotFound)
		assert.ErrorIs(t, ts.SetSourceID(0, -3), ErrInvalidID)

		require.NoError(t, ts.SetSourceID(0, 10))
		assert.False(t, ts.HasSource(0))
		_, ok := ts.AtlasSource(10)
		assert.True(t, ok)
		assert.Equal(t, []int{10, 5, 6}, ts.SourceIDs())
		assert.Equal(t, 11, ts.NextSourceID())
	})

	assert.True(t, ts.RemoveSource(5))
	assert.False(t, ts.RemoveSource(5))
}

func TestHasTileRef(t *testing.T) {
	ts := New()
	atlas := NewAtlasSource("a.png", common.V2i(16, 16))
	require.NoError(t, atlas.CreateTile(common.V2i(2, 1)))
	_, err := ts.AddSource(atlas, 0)
	require.NoError(t, err)
	coll := NewScenesCollectionSource()
	_, err = coll.CreateSceneTile(nil, 3)
	require.NoError(t, err)
	_, err = ts.AddSource(coll, 1)
	require.NoError(t, err)

	cases := []struct {
		name string
		ref  TileRef
		tier Tier
		want bool
	}{
		{"source_present", SourceRef(0), TierSource, true},
		{"source_missing", SourceRef(2), TierSource, false},
		{"coords_present", CoordsRef(0, common.V2i(2, 1)), TierCoords, true},
		{"coords_missing", CoordsRef(0, common.V2i(0, 0)), TierCoords, false},
		{"alternative_zero", AlternativeRef(0, common.V2i(2, 1), 0), TierAlternative, true},
		{"alternative_missing", AlternativeRef(0, common.V2i(2, 1), 1), TierAlternative, false},
		{"scene_tile", AlternativeRef(1, common.V2i(0, 0), 3), TierAlternative, true},
		{"scene_tile_missing", AlternativeRef(1, common.V2i(0, 0), 4), TierAlternative, false},
		{"scene_cell_only_origin", CoordsRef(1, common.V2i(1, 0)), TierCoords, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ts.HasTileRef(c.ref, c.tier))
		})
	}
}

func TestScenesCollectionSource(t *testing.T) {
	coll := NewScenesCollectionSource()
	door := &scenes.Scene{Path: "scenes/door.yaml"}
	lamp := &scenes.Scene{Path: "scenes/lamp.yaml"}

	first, err := coll.CreateSceneTile(door, -1)
	require.NoError(t, err)
	second, err := coll.CreateSceneTile(lamp, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	t.Run("id_collision_keeps_both", func(t *testing.T) {
		err := coll.SetSceneTileID(first, second)
		assert.ErrorIs(t, err, ErrIDCollision)
		assert.Same(t, door, coll.SceneTileScene(first))
		assert.Same(t, lamp, coll.SceneTileScene(second))
		assert.Equal(t, []int{0, 1}, coll.SceneTileIDs())
	})

	t.Run("rename_keeps_order", func(t *testing.T) {
		require.NoError(t, coll.SetSceneTileID(first, 7))
		assert.Equal(t, []int{7, 1}, coll.SceneTileIDs())
		assert.Same(t, door, coll.SceneTileScene(7))
		assert.Equal(t, 8, coll.NextSceneTileID())
	})

	t.Run("ids_are_not_reused", func(t *testing.T) {
		require.NoError(t, coll.RemoveSceneTile(7))
		assert.ErrorIs(t, coll.RemoveSceneTile(7), ErrSceneTileNotFound)
		id, err := coll.CreateSceneTile(nil, -1)
		require.NoError(t, err)
		assert.Equal(t, 8, id)
		id, ok := coll.SceneTileIDAt(0)
		require.True(t, ok)
		assert.Equal(t, 1, id)
		_, ok = coll.SceneTileIDAt(2)
		assert.False(t, ok)
	})

	t.Run("origin_cell_needs_a_scene_tile", func(t *testing.T) {
		empty := NewScenesCollectionSource()
		assert.Zero(t, empty.TileCount())
		assert.False(t, empty.HasTile(common.Vector2i{}))
		assert.Equal(t, 1, coll.TileCount())
		assert.True(t, coll.HasTile(common.Vector2i{}))
	})

	t.Run("replace_scene", func(t *testing.T) {
		fresh := &scenes.Scene{Path: "scenes/lamp.yaml", Spec: scenes.Spec{Name: "Lamp"}}
		assert.Equal(t, []int{1}, coll.ReplaceScene("scenes/lamp.yaml", fresh))
		assert.Same(t, fresh, coll.SceneTileScene(1))
		assert.Empty(t, coll.ReplaceScene("scenes/gone.yaml", fresh))
	})

	t.Run("display_placeholder", func(t *testing.T) {
		require.NoError(t, coll.SetSceneTileDisplayPlaceholder(1, true))
		assert.True(t, coll.SceneTileDisplayPlaceholder(1))
		assert.ErrorIs(t, coll.SetSceneTileDisplayPlaceholder(99, true), ErrSceneTileNotFound)
	})
}

func TestAtlasAlternatives(t *testing.T) {
	atlas := NewAtlasSource("a.png", common.V2i(16, 16))
	c := common.V2i(0, 0)
	assert.ErrorIs(t, atlas.CreateTile(common.V2i(-1, 0)), ErrInvalidID)
	require.NoError(t, atlas.CreateTile(c))
	assert.ErrorIs(t, atlas.CreateTile(c), ErrIDCollision)

	id, err := atlas.CreateAlternativeTile(c, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	_, err = atlas.CreateAlternativeTile(c, 1)
	assert.ErrorIs(t, err, ErrIDCollision)
	_, err = atlas.CreateAlternativeTile(common.V2i(3, 3), -1)
	assert.ErrorIs(t, err, ErrTileNotFound)

	assert.Equal(t, []int{0, 1}, atlas.AlternativeTiles(c))
	assert.ErrorIs(t, atlas.RemoveAlternativeTile(c, 0), ErrInvalidID)
	require.NoError(t, atlas.RemoveAlternativeTile(c, 1))
	assert.False(t, atlas.HasAlternativeTile(c, 1))
}
