package main

import (
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/milk9111/tileset-editor/tileset"
	treeprint "github.com/xlab/treeprint"
)

type InfoCmd struct {
	TileSetArg `embed:""`
}

func (info *InfoCmd) Run(ctx *Context) error {
	if err := info.load(ctx); err != nil {
		return err
	}
	ts := ctx.TileSet

	meta := ""
	if st, err := os.Stat(ctx.TileSetPath); err == nil {
		meta = humanize.Bytes(uint64(st.Size()))
	}
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s (%s, tile size %s)", ctx.TileSetPath, meta, ts.TileSize))

	for _, id := range ts.SourceIDs() {
		if atlas, ok := ts.AtlasSource(id); ok {
			branch := tree.AddMetaBranch(fmt.Sprintf("atlas, %d tiles", atlas.TileCount()), sourceLabel(id, atlas))
			branch.AddNode(atlas.Texture)
			continue
		}
		if scenes, ok := ts.ScenesCollectionSource(id); ok {
			branch := tree.AddMetaBranch(fmt.Sprintf("scenes, %d tiles", scenes.SceneTileCount()), sourceLabel(id, scenes))
			for _, sid := range scenes.SceneTileIDs() {
				scene := scenes.SceneTileScene(sid)
				branch.AddMetaNode(sid, scene.DisplayName())
			}
		}
	}
	tree.AddMetaNode("proxies", fmt.Sprintf("%d source, %d coords, %d alternative",
		len(ts.Proxies(tileset.TierSource)),
		len(ts.Proxies(tileset.TierCoords)),
		len(ts.Proxies(tileset.TierAlternative))))

	fmt.Println(tree.String())
	return nil
}

func sourceLabel(id int, src tileset.Source) string {
	if src.Name() == "" {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%d: %s", id, src.Name())
}
