package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/tileset-editor/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	thumb := Thumbnail(src, 16)
	assert.Equal(t, image.Rect(0, 0, 16, 16), thumb.Bounds())
	// 16x8 band centered vertically
	assert.Zero(t, thumb.RGBAAt(8, 1).A)
	assert.NotZero(t, thumb.RGBAAt(8, 8).A)
}

func TestGeneratorDeliversOnPoll(t *testing.T) {
	dir := t.TempDir()
	sprite := image.NewRGBA(image.Rect(0, 0, 8, 8))
	f, err := os.Create(filepath.Join(dir, "door.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sprite))
	require.NoError(t, f.Close())
	scenePath := filepath.Join(dir, "door.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte("name: Door\nsprite: door.png\n"), 0644))
	scene, err := scenes.Load(scenePath)
	require.NoError(t, err)

	g := NewGenerator(32, nil)
	defer g.Close()

	type delivery struct {
		path     string
		thumb    image.Image
		userdata int
	}
	got := make(chan delivery, 2)
	cb := func(path string, thumb image.Image, userdata int) {
		got <- delivery{path, thumb, userdata}
	}
	require.NoError(t, g.Queue(scene, 3, cb))
	require.NoError(t, g.Queue(nil, 4, cb))

	deadline := time.Now().Add(2 * time.Second)
	var results []delivery
	for len(results) < 2 && time.Now().Before(deadline) {
		g.Poll()
		select {
		case d := <-got:
			results = append(results, d)
		case <-time.After(5 * time.Millisecond):
		}
	}
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].userdata)
	assert.Equal(t, filepath.ToSlash(scenePath), results[0].path)
	assert.Equal(t, image.Rect(0, 0, 32, 32), results[0].thumb.Bounds())
	assert.Equal(t, 4, results[1].userdata)
	assert.Equal(t, "", results[1].path)
}

func TestQueueAfterClose(t *testing.T) {
	g := NewGenerator(16, nil)
	g.Close()
	g.Close()
	assert.ErrorIs(t, g.Queue(nil, 0, nil), ErrClosed)
}

func TestQueueNeverBlocksWithoutPoll(t *testing.T) {
	g := NewGenerator(8, nil)
	defer g.Close()

	const n = 500
	delivered := 0
	cb := func(string, image.Image, int) { delivered++ }

	queued := make(chan error, 1)
	go func() {
		for i := 0; i < n; i++ {
			if err := g.Queue(nil, i, cb); err != nil {
				queued <- err
				return
			}
		}
		queued <- nil
	}()
	select {
	case err := <-queued:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Queue blocked while no results were polled")
	}

	deadline := time.Now().Add(5 * time.Second)
	for delivered < n && time.Now().Before(deadline) {
		g.Poll()
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, n, delivered)
	assert.Zero(t, g.Pending())
}
