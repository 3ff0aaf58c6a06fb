package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTileSet saves a tile set with atlas source 0 (tiles (0,0) and (1,0))
// and an empty scenes collection source 1.
func writeTileSet(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	ts := tileset.New()
	atlas := tileset.NewAtlasSource("tiles.png", common.V2i(16, 16))
	require.NoError(t, atlas.CreateTile(common.V2i(0, 0)))
	require.NoError(t, atlas.CreateTile(common.V2i(1, 0)))
	_, err := ts.AddSource(atlas, 0)
	require.NoError(t, err)
	_, err = ts.AddSource(tileset.NewScenesCollectionSource(), 1)
	require.NoError(t, err)

	path := filepath.Join(dir, "level.tileset.yaml")
	require.NoError(t, tileset.Save(path, ts))
	return path
}

func reload(t *testing.T, path string) *tileset.TileSet {
	t.Helper()
	ts, err := tileset.Load(path)
	require.NoError(t, err)
	return ts
}

func TestProxiesAddAndRemove(t *testing.T) {
	path := writeTileSet(t)

	add := &ProxiesAddCmd{TileSetArg: TileSetArg{TileSet: path}, From: "0:1,0", To: "0:0,0"}
	require.NoError(t, add.Run(&Context{}))
	ts := reload(t, path)
	to, ok := ts.Proxy(tileset.TierCoords, tileset.CoordsRef(0, common.V2i(1, 0)))
	require.True(t, ok)
	assert.Equal(t, tileset.CoordsRef(0, common.V2i(0, 0)), to)

	rm := &ProxiesRemoveCmd{TileSetArg: TileSetArg{TileSet: path}, From: []string{"0:1,0", "5"}}
	require.NoError(t, rm.Run(&Context{}))
	assert.Zero(t, reload(t, path).ProxyCount())
}

func TestProxiesDryRunLeavesFile(t *testing.T) {
	path := writeTileSet(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	add := &ProxiesAddCmd{
		TileSetArg: TileSetArg{TileSet: path},
		EditFlags:  EditFlags{DryRun: true},
		From:       "0",
		To:         "1",
	}
	ctx := &Context{}
	require.NoError(t, add.Run(ctx))
	assert.Zero(t, ctx.TileSet.ProxyCount())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProxiesAddRejectsSelfProxy(t *testing.T) {
	path := writeTileSet(t)
	add := &ProxiesAddCmd{TileSetArg: TileSetArg{TileSet: path}, From: "0", To: "0"}
	assert.ErrorIs(t, add.Run(&Context{}), tileset.ErrSelfProxy)
}

func TestProxiesCleanup(t *testing.T) {
	path := writeTileSet(t)
	ts := reload(t, path)
	_, _, err := ts.SetProxy(tileset.TierSource, tileset.SourceRef(9), tileset.SourceRef(0))
	require.NoError(t, err)
	_, _, err = ts.SetProxy(tileset.TierSource, tileset.SourceRef(0), tileset.SourceRef(1))
	require.NoError(t, err)
	require.NoError(t, tileset.Save(path, ts))

	cleanup := &ProxiesCleanupCmd{TileSetArg: TileSetArg{TileSet: path}}
	require.NoError(t, cleanup.Run(&Context{}))
	ts = reload(t, path)
	assert.Equal(t, 1, ts.ProxyCount())
	assert.True(t, ts.HasProxy(tileset.TierSource, tileset.SourceRef(0)))
}

func TestScenesCommands(t *testing.T) {
	path := writeTileSet(t)
	dir := filepath.Dir(path)
	door := filepath.Join(dir, "door.yaml")
	require.NoError(t, os.WriteFile(door, []byte("name: Door\n"), 0644))
	chest := filepath.Join(dir, "chest.yaml")
	require.NoError(t, os.WriteFile(chest, []byte("name: Chest\n"), 0644))

	add := &ScenesAddCmd{
		TileSetArg: TileSetArg{TileSet: path},
		SourceArg:  SourceArg{Source: 1},
		Scenes:     []string{door, chest},
	}
	require.NoError(t, add.Run(&Context{}))
	src, ok := reload(t, path).ScenesCollectionSource(1)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, src.SceneTileIDs())

	collide := &ScenesSetIDCmd{TileSetArg: TileSetArg{TileSet: path}, SourceArg: SourceArg{Source: 1}, ID: 0, NewID: 1}
	assert.ErrorIs(t, collide.Run(&Context{}), tileset.ErrIDCollision)

	setID := &ScenesSetIDCmd{TileSetArg: TileSetArg{TileSet: path}, SourceArg: SourceArg{Source: 1}, ID: 0, NewID: 4}
	require.NoError(t, setID.Run(&Context{}))
	rm := &ScenesRemoveCmd{TileSetArg: TileSetArg{TileSet: path}, SourceArg: SourceArg{Source: 1}, ID: 1}
	require.NoError(t, rm.Run(&Context{}))

	src, _ = reload(t, path).ScenesCollectionSource(1)
	assert.Equal(t, []int{4}, src.SceneTileIDs())
	assert.Equal(t, "Door", src.SceneTileScene(4).DisplayName())

	missing := &ScenesRemoveCmd{TileSetArg: TileSetArg{TileSet: path}, SourceArg: SourceArg{Source: 1}, ID: 9}
	assert.ErrorIs(t, missing.Run(&Context{}), tileset.ErrSceneTileNotFound)
	wrongKind := &ScenesListCmd{TileSetArg: TileSetArg{TileSet: path}, SourceArg: SourceArg{Source: 0}}
	assert.ErrorIs(t, wrongKind.Run(&Context{}), tileset.ErrSourceNotFound)
}
