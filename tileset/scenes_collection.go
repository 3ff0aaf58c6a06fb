package tileset

import (
	"fmt"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/scenes"
)

type sceneTile struct {
	scene              *scenes.Scene
	displayPlaceholder bool
}

// ScenesCollectionSource is a source whose tiles are placeholder scenes.
// All scene tiles sit at atlas coords (0, 0); the scene tile id doubles as
// the alternative id. Iteration order is creation order.
type ScenesCollectionSource struct {
	name        string
	tiles       map[int]*sceneTile
	ids         []int
	nextSceneID int
}

func NewScenesCollectionSource() *ScenesCollectionSource {
	return &ScenesCollectionSource{tiles: make(map[int]*sceneTile)}
}

func (s *ScenesCollectionSource) Name() string        { return s.name }
func (s *ScenesCollectionSource) SetName(name string) { s.name = name }

// TileCount is 1 while the collection holds scene tiles, all of them at the
// origin cell, and 0 when it is empty.
func (s *ScenesCollectionSource) TileCount() int {
	if len(s.ids) == 0 {
		return 0
	}
	return 1
}

func (s *ScenesCollectionSource) HasTile(coords common.Vector2i) bool {
	return coords == common.Vector2i{} && len(s.ids) > 0
}

func (s *ScenesCollectionSource) HasAlternativeTile(coords common.Vector2i, alternative int) bool {
	return s.HasTile(coords) && s.HasSceneTileID(alternative)
}

// NextSceneTileID is a monotonic counter: ids freed by removal are not reused.
func (s *ScenesCollectionSource) NextSceneTileID() int {
	return s.nextSceneID
}

func (s *ScenesCollectionSource) SceneTileCount() int {
	return len(s.ids)
}

func (s *ScenesCollectionSource) SceneTileIDAt(index int) (int, bool) {
	if index < 0 || index >= len(s.ids) {
		return 0, false
	}
	return s.ids[index], true
}

func (s *ScenesCollectionSource) SceneTileIDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *ScenesCollectionSource) HasSceneTileID(id int) bool {
	_, ok := s.tiles[id]
	return ok
}

// CreateSceneTile adds a scene tile. A negative id uses NextSceneTileID.
func (s *ScenesCollectionSource) CreateSceneTile(scene *scenes.Scene, id int) (int, error) {
	if id < 0 {
		id = s.nextSceneID
	}
	if s.HasSceneTileID(id) {
		return 0, fmt.Errorf("tileset: create scene tile %d: %w", id, ErrIDCollision)
	}
	s.tiles[id] = &sceneTile{scene: scene, displayPlaceholder: false}
	s.ids = append(s.ids, id)
	s.bumpNext(id)
	return id, nil
}

func (s *ScenesCollectionSource) RemoveSceneTile(id int) error {
	if !s.HasSceneTileID(id) {
		return fmt.Errorf("tileset: remove scene tile %d: %w", id, ErrSceneTileNotFound)
	}
	delete(s.tiles, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

// SetSceneTileID renames a scene tile in place. The new id must be unused.
func (s *ScenesCollectionSource) SetSceneTileID(id, newID int) error {
	if newID < 0 {
		return fmt.Errorf("tileset: set scene tile id %d -> %d: %w", id, newID, ErrInvalidID)
	}
	t, ok := s.tiles[id]
	if !ok {
		return fmt.Errorf("tileset: set scene tile id %d: %w", id, ErrSceneTileNotFound)
	}
	if id == newID {
		return nil
	}
	if s.HasSceneTileID(newID) {
		return fmt.Errorf("tileset: set scene tile id %d -> %d: %w", id, newID, ErrIDCollision)
	}
	delete(s.tiles, id)
	s.tiles[newID] = t
	for i, v := range s.ids {
		if v == id {
			s.ids[i] = newID
			break
		}
	}
	s.bumpNext(newID)
	return nil
}

func (s *ScenesCollectionSource) SceneTileScene(id int) *scenes.Scene {
	if t, ok := s.tiles[id]; ok {
		return t.scene
	}
	return nil
}

func (s *ScenesCollectionSource) SetSceneTileScene(id int, scene *scenes.Scene) error {
	t, ok := s.tiles[id]
	if !ok {
		return fmt.Errorf("tileset: set scene of tile %d: %w", id, ErrSceneTileNotFound)
	}
	t.scene = scene
	return nil
}

func (s *ScenesCollectionSource) SceneTileDisplayPlaceholder(id int) bool {
	if t, ok := s.tiles[id]; ok {
		return t.displayPlaceholder
	}
	return false
}

func (s *ScenesCollectionSource) SetSceneTileDisplayPlaceholder(id int, display bool) error {
	t, ok := s.tiles[id]
	if !ok {
		return fmt.Errorf("tileset: set display placeholder of tile %d: %w", id, ErrSceneTileNotFound)
	}
	t.displayPlaceholder = display
	return nil
}

// ReplaceScene points every tile using the scene at path to scene, typically
// a fresh load of the same file. It returns the ids of the tiles changed.
func (s *ScenesCollectionSource) ReplaceScene(path string, scene *scenes.Scene) []int {
	var changed []int
	for _, id := range s.ids {
		t := s.tiles[id]
		if t.scene != nil && t.scene.ResourcePath() == path {
			t.scene = scene
			changed = append(changed, id)
		}
	}
	return changed
}

func (s *ScenesCollectionSource) bumpNext(id int) {
	if id >= s.nextSceneID {
		s.nextSceneID = id + 1
	}
}
