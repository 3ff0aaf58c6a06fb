package tileset

import (
	"fmt"
	"sort"

	"github.com/milk9111/tileset-editor/common"
)

type atlasTile struct {
	alternatives    []int
	nextAlternative int
}

// AtlasSource cuts a texture into a grid of tiles. Every tile owns an ordered
// set of alternatives; alternative 0 always exists.
type AtlasSource struct {
	name     string
	Texture  string
	TileSize common.Vector2i
	tiles    map[common.Vector2i]*atlasTile
}

func NewAtlasSource(texture string, tileSize common.Vector2i) *AtlasSource {
	return &AtlasSource{
		Texture:  texture,
		TileSize: tileSize,
		tiles:    make(map[common.Vector2i]*atlasTile),
	}
}

func (a *AtlasSource) Name() string        { return a.name }
func (a *AtlasSource) SetName(name string) { a.name = name }
func (a *AtlasSource) TileCount() int      { return len(a.tiles) }

func (a *AtlasSource) HasTile(coords common.Vector2i) bool {
	_, ok := a.tiles[coords]
	return ok
}

func (a *AtlasSource) CreateTile(coords common.Vector2i) error {
	if !coords.Valid() {
		return fmt.Errorf("tileset: create tile %s: %w", coords, ErrInvalidID)
	}
	if a.HasTile(coords) {
		return fmt.Errorf("tileset: create tile %s: %w", coords, ErrIDCollision)
	}
	a.tiles[coords] = &atlasTile{alternatives: []int{0}, nextAlternative: 1}
	return nil
}

func (a *AtlasSource) RemoveTile(coords common.Vector2i) {
	delete(a.tiles, coords)
}

// Tiles returns the coordinates of every tile, row-major.
func (a *AtlasSource) Tiles() []common.Vector2i {
	out := make([]common.Vector2i, 0, len(a.tiles))
	for c := range a.tiles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (a *AtlasSource) HasAlternativeTile(coords common.Vector2i, alternative int) bool {
	t, ok := a.tiles[coords]
	if !ok {
		return false
	}
	for _, alt := range t.alternatives {
		if alt == alternative {
			return true
		}
	}
	return false
}

// CreateAlternativeTile adds an alternative to the tile at coords. A negative
// id picks the next free one. The id used is returned.
func (a *AtlasSource) CreateAlternativeTile(coords common.Vector2i, id int) (int, error) {
	t, ok := a.tiles[coords]
	if !ok {
		return InvalidAlternative, fmt.Errorf("tileset: create alternative at %s: %w", coords, ErrTileNotFound)
	}
	if id < 0 {
		id = t.nextAlternative
	}
	if a.HasAlternativeTile(coords, id) {
		return InvalidAlternative, fmt.Errorf("tileset: create alternative %d at %s: %w", id, coords, ErrIDCollision)
	}
	t.alternatives = append(t.alternatives, id)
	sort.Ints(t.alternatives)
	if id >= t.nextAlternative {
		t.nextAlternative = id + 1
	}
	return id, nil
}

func (a *AtlasSource) RemoveAlternativeTile(coords common.Vector2i, id int) error {
	if id == 0 {
		return fmt.Errorf("tileset: remove alternative 0 at %s: %w", coords, ErrInvalidID)
	}
	t, ok := a.tiles[coords]
	if !ok {
		return nil
	}
	for i, alt := range t.alternatives {
		if alt == id {
			t.alternatives = append(t.alternatives[:i], t.alternatives[i+1:]...)
			break
		}
	}
	return nil
}

func (a *AtlasSource) AlternativeTiles(coords common.Vector2i) []int {
	t, ok := a.tiles[coords]
	if !ok {
		return nil
	}
	out := make([]int, len(t.alternatives))
	copy(out, t.alternatives)
	return out
}
