package tileset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/scenes"
	"gopkg.in/yaml.v3"
)

const (
	kindAtlas  = "atlas"
	kindScenes = "scenes"
)

type fileSpec struct {
	Name         string          `yaml:"name,omitempty"`
	TileSize     common.Vector2i `yaml:"tile_size"`
	NextSourceID int             `yaml:"next_source_id"`
	Sources      []sourceSpec    `yaml:"sources"`
	Proxies      proxiesSpec     `yaml:"proxies,omitempty"`
}

type sourceSpec struct {
	ID       int              `yaml:"id"`
	Kind     string           `yaml:"kind"`
	Name     string           `yaml:"name,omitempty"`
	Texture  string           `yaml:"texture,omitempty"`
	TileSize *common.Vector2i `yaml:"tile_size,omitempty"`
	Tiles    []atlasTileSpec  `yaml:"tiles,omitempty"`
	NextID   int              `yaml:"next_scene_id,omitempty"`
	Scenes   []sceneTileSpec  `yaml:"scenes,omitempty"`
}

type atlasTileSpec struct {
	Coords       common.Vector2i `yaml:"coords"`
	Alternatives []int           `yaml:"alternatives,flow"`
}

type sceneTileSpec struct {
	ID                 int    `yaml:"id"`
	Scene              string `yaml:"scene,omitempty"`
	DisplayPlaceholder bool   `yaml:"display_placeholder,omitempty"`
}

type proxySpec struct {
	From TileRef `yaml:"from"`
	To   TileRef `yaml:"to"`
}

type proxiesSpec struct {
	Source      []proxySpec `yaml:"source,omitempty"`
	Coords      []proxySpec `yaml:"coords,omitempty"`
	Alternative []proxySpec `yaml:"alternative,omitempty"`
}

func (p *proxiesSpec) tier(t Tier) *[]proxySpec {
	switch t {
	case TierSource:
		return &p.Source
	case TierCoords:
		return &p.Coords
	default:
		return &p.Alternative
	}
}

// Load reads a tile-set resource. Scene paths are resolved relative to the
// resource file; scenes that fail to load are kept as bare references.
func Load(path string) (*TileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tileset: load %s: %w", path, err)
	}
	ts, err := Decode(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("tileset: load %s: %w", path, err)
	}
	return ts, nil
}

func Decode(data []byte, baseDir string) (*TileSet, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	ts := New()
	ts.Name = spec.Name
	if spec.TileSize.X > 0 && spec.TileSize.Y > 0 {
		ts.TileSize = spec.TileSize
	}
	for _, ss := range spec.Sources {
		src, err := decodeSource(ss, ts.TileSize, baseDir)
		if err != nil {
			return nil, err
		}
		if _, err := ts.AddSource(src, ss.ID); err != nil {
			return nil, err
		}
	}
	if spec.NextSourceID > ts.nextSourceID {
		ts.nextSourceID = spec.NextSourceID
	}
	for _, tier := range Tiers {
		for _, p := range *spec.Proxies.tier(tier) {
			if _, _, err := ts.SetProxy(tier, p.From, p.To); err != nil {
				return nil, err
			}
		}
	}
	return ts, nil
}

func decodeSource(ss sourceSpec, defaultTileSize common.Vector2i, baseDir string) (Source, error) {
	switch ss.Kind {
	case kindAtlas:
		size := defaultTileSize
		if ss.TileSize != nil {
			size = *ss.TileSize
		}
		atlas := NewAtlasSource(ss.Texture, size)
		atlas.SetName(ss.Name)
		for _, t := range ss.Tiles {
			if err := atlas.CreateTile(t.Coords); err != nil {
				return nil, err
			}
			for _, alt := range t.Alternatives {
				if alt == 0 {
					continue
				}
				if _, err := atlas.CreateAlternativeTile(t.Coords, alt); err != nil {
					return nil, err
				}
			}
		}
		return atlas, nil
	case kindScenes:
		coll := NewScenesCollectionSource()
		coll.SetName(ss.Name)
		for _, st := range ss.Scenes {
			id, err := coll.CreateSceneTile(loadScene(st.Scene, baseDir), st.ID)
			if err != nil {
				return nil, err
			}
			if err := coll.SetSceneTileDisplayPlaceholder(id, st.DisplayPlaceholder); err != nil {
				return nil, err
			}
		}
		coll.bumpNext(ss.NextID - 1)
		return coll, nil
	}
	return nil, fmt.Errorf("source %d kind %q: %w", ss.ID, ss.Kind, ErrUnknownSourceKind)
}

func loadScene(path, baseDir string) *scenes.Scene {
	if path == "" {
		return nil
	}
	full := filepath.FromSlash(path)
	if !filepath.IsAbs(full) && baseDir != "" {
		full = filepath.Join(baseDir, full)
	}
	if sc, err := scenes.Load(full); err == nil {
		return sc
	}
	return scenes.Reference(full)
}

// Save writes the tile set as YAML. Scene paths are stored relative to the
// resource file when possible.
func Save(path string, ts *TileSet) error {
	data, err := Encode(ts, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("tileset: save %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("tileset: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("tileset: save %s: %w", path, err)
	}
	return nil
}

func Encode(ts *TileSet, baseDir string) ([]byte, error) {
	spec := fileSpec{
		Name:         ts.Name,
		TileSize:     ts.TileSize,
		NextSourceID: ts.nextSourceID,
	}
	for _, id := range ts.ids {
		ss := sourceSpec{ID: id, Name: ts.sources[id].Name()}
		switch src := ts.sources[id].(type) {
		case *AtlasSource:
			ss.Kind = kindAtlas
			ss.Texture = src.Texture
			if src.TileSize != ts.TileSize {
				size := src.TileSize
				ss.TileSize = &size
			}
			for _, c := range src.Tiles() {
				ss.Tiles = append(ss.Tiles, atlasTileSpec{Coords: c, Alternatives: src.AlternativeTiles(c)})
			}
		case *ScenesCollectionSource:
			ss.Kind = kindScenes
			ss.NextID = src.nextSceneID
			for _, sid := range src.ids {
				ss.Scenes = append(ss.Scenes, sceneTileSpec{
					ID:                 sid,
					Scene:              relativeTo(baseDir, src.SceneTileScene(sid).ResourcePath()),
					DisplayPlaceholder: src.SceneTileDisplayPlaceholder(sid),
				})
			}
		default:
			return nil, fmt.Errorf("encode source %d: %w", id, ErrUnknownSourceKind)
		}
		spec.Sources = append(spec.Sources, ss)
	}
	for _, tier := range Tiers {
		dst := spec.Proxies.tier(tier)
		for _, e := range ts.Proxies(tier) {
			*dst = append(*dst, proxySpec{From: e.From, To: e.To})
		}
	}
	return yaml.Marshal(&spec)
}

func relativeTo(baseDir, path string) string {
	if path == "" || baseDir == "" {
		return path
	}
	if rel, err := filepath.Rel(baseDir, filepath.FromSlash(path)); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
