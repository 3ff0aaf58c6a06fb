package editor

import (
	"testing"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/tileset"
	"github.com/milk9111/tileset-editor/undo"
	"github.com/stretchr/testify/require"
)

// recorder wraps a real History and logs the calls made on it.
type recorder struct {
	*undo.History
	calls []string
	undos []string
}

func newRecorder() *recorder {
	return &recorder{History: undo.New(0, nil)}
}

func (r *recorder) CreateAction(name string) {
	r.calls = append(r.calls, "create "+name)
	r.History.CreateAction(name)
}

func (r *recorder) CommitAction() {
	r.calls = append(r.calls, "commit")
	r.History.CommitAction()
}

func (r *recorder) Undo() bool {
	name := r.History.CurrentActionName()
	ok := r.History.Undo()
	if ok {
		r.undos = append(r.undos, name)
	}
	return ok
}

// newTestTileSet has atlas sources 3 and 7, each with tiles (0,0) and
// (1,2), and alternative 1 on (1,2).
func newTestTileSet(t *testing.T) *tileset.TileSet {
	t.Helper()
	ts := tileset.New()
	for _, id := range []int{3, 7} {
		atlas := tileset.NewAtlasSource("tiles.png", common.V2i(16, 16))
		require.NoError(t, atlas.CreateTile(common.V2i(0, 0)))
		require.NoError(t, atlas.CreateTile(common.V2i(1, 2)))
		_, err := atlas.CreateAlternativeTile(common.V2i(1, 2), 1)
		require.NoError(t, err)
		_, err = ts.AddSource(atlas, id)
		require.NoError(t, err)
	}
	return ts
}
