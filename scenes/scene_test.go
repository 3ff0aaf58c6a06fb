package scenes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "door.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Door\nsprite: sprites/door.png\nsize: {w: 16, h: 32}\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Door", s.DisplayName())
	assert.Equal(t, SizeSpec{W: 16, H: 32}, s.Spec.Size)
	assert.Equal(t, filepath.Join(dir, "sprites", "door.png"), s.SpritePath())

	_, err = Load(filepath.Join(dir, "door.png"))
	assert.ErrorIs(t, err, ErrNotSceneFile)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNilAndReferenceScenes(t *testing.T) {
	var s *Scene
	assert.Equal(t, "<empty>", s.DisplayName())
	assert.Empty(t, s.ResourcePath())
	assert.Empty(t, s.SpritePath())

	assert.Nil(t, Reference(""))
	ref := Reference("scenes/chest.yml")
	assert.Equal(t, "chest", ref.DisplayName())
	assert.Equal(t, "scenes/chest.yml", ref.ResourcePath())
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755))

	infos, err := List(dir)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "b", infos[1].Name)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "a.yml")), infos[0].Path)
}

func TestWatchedExtensionsIgnoreCase(t *testing.T) {
	cases := []struct {
		path  string
		scene bool
		image bool
	}{
		{"door.yaml", true, false},
		{"DOOR.YML", true, false},
		{"door.png", false, true},
		{"Door.PNG", false, true},
		{"notes.txt", false, false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			assert.Equal(t, c.scene, IsSceneFile(c.path))
			assert.Equal(t, c.image, isImageFile(c.path))
		})
	}
}
