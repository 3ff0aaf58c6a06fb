package scenes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotSceneFile = errors.New("not a scene file")

// Spec is the on-disk description of a placeholder scene.
type Spec struct {
	Name   string   `yaml:"name"`
	Sprite string   `yaml:"sprite"`
	Size   SizeSpec `yaml:"size"`
}

type SizeSpec struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Scene is a loaded placeholder scene resource. A nil *Scene is a valid,
// empty reference.
type Scene struct {
	Path string
	Spec Spec
}

func Load(path string) (*Scene, error) {
	if !IsSceneFile(path) {
		return nil, fmt.Errorf("scenes: load %s: %w", path, ErrNotSceneFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenes: load %s: %w", path, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("scenes: unmarshal %s: %w", path, err)
	}
	return &Scene{Path: filepath.ToSlash(path), Spec: spec}, nil
}

// Reference returns a scene that only knows its path. Used when a tile set
// references a scene file that is missing on disk.
func Reference(path string) *Scene {
	if path == "" {
		return nil
	}
	return &Scene{Path: filepath.ToSlash(path)}
}

func (s *Scene) ResourcePath() string {
	if s == nil {
		return ""
	}
	return s.Path
}

func (s *Scene) DisplayName() string {
	if s == nil {
		return "<empty>"
	}
	if s.Spec.Name != "" {
		return s.Spec.Name
	}
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SpritePath resolves the sprite relative to the scene file.
func (s *Scene) SpritePath() string {
	if s == nil || s.Spec.Sprite == "" {
		return ""
	}
	if filepath.IsAbs(s.Spec.Sprite) {
		return s.Spec.Sprite
	}
	return filepath.Join(filepath.Dir(filepath.FromSlash(s.Path)), filepath.FromSlash(s.Spec.Sprite))
}

func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Info holds information about a scene file found on disk.
type Info struct {
	Name string
	Path string
}

// List scans dir for scene files.
func List(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		ext := filepath.Ext(entry.Name())
		infos = append(infos, Info{
			Name: strings.TrimSuffix(entry.Name(), ext),
			Path: filepath.ToSlash(filepath.Join(dir, entry.Name())),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}
