package tileset

import "github.com/milk9111/tileset-editor/common"

// Source is a provider of tiles registered in a TileSet under an id.
type Source interface {
	Name() string
	SetName(name string)
	TileCount() int
	HasTile(coords common.Vector2i) bool
	HasAlternativeTile(coords common.Vector2i, alternative int) bool
}
