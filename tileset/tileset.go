package tileset

import (
	"fmt"

	"github.com/milk9111/tileset-editor/common"
)

// TileSet owns an ordered registry of sources and the tile proxy table.
type TileSet struct {
	Name         string
	TileSize     common.Vector2i
	sources      map[int]Source
	ids          []int
	nextSourceID int
	proxies      [3]map[TileRef]TileRef
}

func New() *TileSet {
	ts := &TileSet{
		TileSize: common.V2i(16, 16),
		sources:  make(map[int]Source),
	}
	for i := range ts.proxies {
		ts.proxies[i] = make(map[TileRef]TileRef)
	}
	return ts
}

// NextSourceID returns the id AddSource would assign to a source added
// without an explicit id.
func (ts *TileSet) NextSourceID() int {
	return ts.nextSourceID
}

// AddSource registers src under id, or under NextSourceID when id is negative.
func (ts *TileSet) AddSource(src Source, id int) (int, error) {
	if src == nil {
		return InvalidSource, fmt.Errorf("tileset: add source: %w", ErrSourceNotFound)
	}
	if id < 0 {
		id = ts.nextSourceID
	}
	if ts.HasSource(id) {
		return InvalidSource, fmt.Errorf("tileset: add source %d: %w", id, ErrIDCollision)
	}
	ts.sources[id] = src
	ts.ids = append(ts.ids, id)
	if id >= ts.nextSourceID {
		ts.nextSourceID = id + 1
	}
	return id, nil
}

func (ts *TileSet) RemoveSource(id int) bool {
	if !ts.HasSource(id) {
		return false
	}
	delete(ts.sources, id)
	for i, v := range ts.ids {
		if v == id {
			ts.ids = append(ts.ids[:i], ts.ids[i+1:]...)
			break
		}
	}
	return true
}

func (ts *TileSet) HasSource(id int) bool {
	_, ok := ts.sources[id]
	return ok
}

func (ts *TileSet) Source(id int) (Source, bool) {
	src, ok := ts.sources[id]
	return src, ok
}

func (ts *TileSet) SourceCount() int {
	return len(ts.ids)
}

// SourceIDs returns ids in registration order.
func (ts *TileSet) SourceIDs() []int {
	out := make([]int, len(ts.ids))
	copy(out, ts.ids)
	return out
}

func (ts *TileSet) AtlasSource(id int) (*AtlasSource, bool) {
	src, ok := ts.sources[id].(*AtlasSource)
	return src, ok
}

func (ts *TileSet) ScenesCollectionSource(id int) (*ScenesCollectionSource, bool) {
	src, ok := ts.sources[id].(*ScenesCollectionSource)
	return src, ok
}

// SetSourceID moves a source to a new id, keeping its registration slot.
func (ts *TileSet) SetSourceID(id, newID int) error {
	if newID < 0 {
		return fmt.Errorf("tileset: set source id %d -> %d: %w", id, newID, ErrInvalidID)
	}
	src, ok := ts.sources[id]
	if !ok {
		return fmt.Errorf("tileset: set source id %d: %w", id, ErrSourceNotFound)
	}
	if id == newID {
		return nil
	}
	if ts.HasSource(newID) {
		return fmt.Errorf("tileset: set source id %d -> %d: %w", id, newID, ErrIDCollision)
	}
	delete(ts.sources, id)
	ts.sources[newID] = src
	for i, v := range ts.ids {
		if v == id {
			ts.ids[i] = newID
			break
		}
	}
	if newID >= ts.nextSourceID {
		ts.nextSourceID = newID + 1
	}
	return nil
}

// HasTileRef reports whether the reference, read at the given tier, points at
// something present in the tile set.
func (ts *TileSet) HasTileRef(ref TileRef, tier Tier) bool {
	src, ok := ts.sources[ref.SourceID]
	if !ok {
		return false
	}
	switch tier {
	case TierSource:
		return true
	case TierCoords:
		return src.HasTile(ref.Coords)
	case TierAlternative:
		return src.HasTile(ref.Coords) && src.HasAlternativeTile(ref.Coords, ref.Alternative)
	}
	return false
}
