package editor

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/tileset-editor/preview"
	"github.com/milk9111/tileset-editor/scenes"
	"github.com/milk9111/tileset-editor/tileset"
	"github.com/sirupsen/logrus"
)

type (
	AddSceneTileMsg          struct{ Path string }
	RemoveSceneTileMsg       struct{}
	SelectSceneTileMsg       struct{ Index int }
	SetSceneTileIDMsg        struct{ ID int }
	SetSceneMsg              struct{ Path string }
	SetDisplayPlaceholderMsg struct{ Display bool }
	SetSourceNameMsg         struct{ Name string }
	SetSourceIDMsg           struct{ ID int }
	DropFilesMsg             struct{ Paths []string }
)

func (AddSceneTileMsg) isMsg()          {}
func (RemoveSceneTileMsg) isMsg()       {}
func (SelectSceneTileMsg) isMsg()       {}
func (SetSceneTileIDMsg) isMsg()        {}
func (SetSceneMsg) isMsg()              {}
func (SetDisplayPlaceholderMsg) isMsg() {}
func (SetSourceNameMsg) isMsg()         {}
func (SetSourceIDMsg) isMsg()           {}
func (DropFilesMsg) isMsg()             {}

// Previewer renders scene thumbnails asynchronously. *preview.Generator
// implements it.
type Previewer interface {
	Queue(scene *scenes.Scene, userdata int, done preview.Callback) error
}

// SceneTileRow is one entry of the scene tile list. Icon is nil until the
// preview arrives.
type SceneTileRow struct {
	ID        int
	Label     string
	ScenePath string
	Icon      image.Image
}

// ScenesCollectionSourceEditor edits the scene tiles and the source-level
// properties of one scenes collection source.
type ScenesCollectionSourceEditor struct {
	log      logrus.FieldLogger
	undo     UndoRedo
	previews Previewer

	tileSet  *tileset.TileSet
	source   *tileset.ScenesCollectionSource
	sourceID int

	rows     []SceneTileRow
	selected int

	// LoadScene opens dropped or picked scene files.
	LoadScene func(path string) (*scenes.Scene, error)
	// OnRefresh is called after the rows were rebuilt.
	OnRefresh func()
	// OnIconChanged is called when a preview patched the row at index.
	OnIconChanged func(index int)
}

// NewScenesCollectionSourceEditor creates an editor. previews may be nil,
// rows then never get an icon.
func NewScenesCollectionSourceEditor(history UndoRedo, previews Previewer, log logrus.FieldLogger) *ScenesCollectionSourceEditor {
	return &ScenesCollectionSourceEditor{
		log:       orStandard(log).WithField("dialog", "scenes_collection"),
		undo:      history,
		previews:  previews,
		selected:  -1,
		LoadScene: scenes.Load,
	}
}

// Edit binds the editor to the source registered under sourceID.
func (e *ScenesCollectionSourceEditor) Edit(ts *tileset.TileSet, sourceID int) error {
	if ts == nil {
		return ErrNoTileSet
	}
	src, ok := ts.ScenesCollectionSource(sourceID)
	if !ok {
		return fmt.Errorf("editor: edit scenes collection %d: %w", sourceID, tileset.ErrSourceNotFound)
	}
	e.tileSet = ts
	e.source = src
	e.sourceID = sourceID
	e.selected = -1
	e.Refresh()
	return nil
}

func (e *ScenesCollectionSourceEditor) Source() *tileset.ScenesCollectionSource { return e.source }
func (e *ScenesCollectionSourceEditor) SourceID() int                           { return e.sourceID }
func (e *ScenesCollectionSourceEditor) Rows() []SceneTileRow                    { return e.rows }
func (e *ScenesCollectionSourceEditor) SelectedIndex() int                      { return e.selected }

// SelectedID returns the id of the selected scene tile.
func (e *ScenesCollectionSourceEditor) SelectedID() (int, bool) {
	if e.selected < 0 || e.selected >= len(e.rows) {
		return 0, false
	}
	return e.rows[e.selected].ID, true
}

func (e *ScenesCollectionSourceEditor) Select(index int) {
	if index < 0 || index >= len(e.rows) {
		e.selected = -1
		return
	}
	e.selected = index
}

// Refresh rebuilds the rows and requests a preview for each of them. The
// selection follows its scene tile id when that id still exists.
func (e *ScenesCollectionSourceEditor) Refresh() {
	selectedID, hadSelection := e.SelectedID()
	e.rows = nil
	e.selected = -1
	if e.source == nil {
		e.notifyRefresh()
		return
	}
	for i, id := range e.source.SceneTileIDs() {
		scene := e.source.SceneTileScene(id)
		e.rows = append(e.rows, SceneTileRow{
			ID:        id,
			Label:     fmt.Sprintf("%s - %d", scene.DisplayName(), id),
			ScenePath: scene.ResourcePath(),
		})
		if hadSelection && id == selectedID {
			e.selected = i
		}
	}
	for i, row := range e.rows {
		if row.ScenePath == "" || e.previews == nil {
			continue
		}
		if err := e.previews.Queue(e.source.SceneTileScene(row.ID), i, e.previewDone(row.ID)); err != nil {
			e.log.WithError(err).WithField("scene", row.ScenePath).Warn("queue scene preview")
		}
	}
	e.notifyRefresh()
}

func (e *ScenesCollectionSourceEditor) notifyRefresh() {
	if e.OnRefresh != nil {
		e.OnRefresh()
	}
}

// previewDone patches the icon of the row at index, unless the list changed
// since the request and the row now shows another tile or scene.
func (e *ScenesCollectionSourceEditor) previewDone(id int) preview.Callback {
	return func(path string, thumb image.Image, index int) {
		if index < 0 || index >= len(e.rows) {
			return
		}
		row := &e.rows[index]
		if row.ID != id || row.ScenePath != path {
			return
		}
		row.Icon = thumb
		if e.OnIconChanged != nil {
			e.OnIconChanged(index)
		}
	}
}

func (e *ScenesCollectionSourceEditor) ready() error {
	if e.source == nil {
		return ErrNoTileSet
	}
	return nil
}

func (e *ScenesCollectionSourceEditor) commit() {
	e.undo.AddDoMethod(e.Refresh)
	e.undo.AddUndoMethod(e.Refresh)
	e.undo.CommitAction()
}

// AddSceneTile adds a tile for the scene at path under the next free id.
// An empty path adds a tile with no scene.
func (e *ScenesCollectionSourceEditor) AddSceneTile(path string) error {
	if err := e.ready(); err != nil {
		return err
	}
	var scene *scenes.Scene
	if path != "" {
		var err error
		if scene, err = e.LoadScene(path); err != nil {
			return fmt.Errorf("editor: add scene tile: %w", err)
		}
	}
	src := e.source
	id := src.NextSceneTileID()
	e.undo.CreateAction("Add a Scene Tile")
	e.undo.AddDoMethod(func() {
		if _, err := src.CreateSceneTile(scene, id); err != nil {
			e.log.WithError(err).Error("create scene tile")
		}
	})
	e.undo.AddUndoMethod(func() { e.removeTile(src, id) })
	e.commit()
	return nil
}

// RemoveSelected removes the selected scene tile. Undo recreates it with the
// same id, scene and placeholder flag; it is appended at the end of the list.
func (e *ScenesCollectionSourceEditor) RemoveSelected() error {
	if err := e.ready(); err != nil {
		return err
	}
	id, ok := e.SelectedID()
	if !ok {
		return ErrNoSelection
	}
	src := e.source
	scene := src.SceneTileScene(id)
	display := src.SceneTileDisplayPlaceholder(id)
	e.undo.CreateAction("Remove a Scene Tile")
	e.undo.AddDoMethod(func() { e.removeTile(src, id) })
	e.undo.AddUndoMethod(func() {
		if _, err := src.CreateSceneTile(scene, id); err != nil {
			e.log.WithError(err).Error("recreate scene tile")
			return
		}
		if err := src.SetSceneTileDisplayPlaceholder(id, display); err != nil {
			e.log.WithError(err).Error("restore display placeholder")
		}
	})
	e.commit()
	return nil
}

func (e *ScenesCollectionSourceEditor) removeTile(src *tileset.ScenesCollectionSource, id int) {
	if err := src.RemoveSceneTile(id); err != nil {
		e.log.WithError(err).Error("remove scene tile")
	}
}

// SetSelectedID renames the selected scene tile. A used id is rejected
// without touching the collection.
func (e *ScenesCollectionSourceEditor) SetSelectedID(newID int) error {
	if err := e.ready(); err != nil {
		return err
	}
	id, ok := e.SelectedID()
	if !ok {
		return ErrNoSelection
	}
	if id == newID {
		return nil
	}
	if newID < 0 {
		return fmt.Errorf("editor: set scene tile id %d -> %d: %w", id, newID, tileset.ErrInvalidID)
	}
	src := e.source
	if src.HasSceneTileID(newID) {
		return fmt.Errorf("editor: set scene tile id %d -> %d: %w", id, newID, tileset.ErrIDCollision)
	}
	e.undo.CreateAction("Change Scene Tile ID")
	e.undo.AddDoMethod(func() { e.renameTile(src, id, newID) })
	e.undo.AddUndoMethod(func() { e.renameTile(src, newID, id) })
	e.commit()
	return nil
}

func (e *ScenesCollectionSourceEditor) renameTile(src *tileset.ScenesCollectionSource, id, newID int) {
	if err := src.SetSceneTileID(id, newID); err != nil {
		e.log.WithError(err).Error("set scene tile id")
	}
}

// SetSelectedScene points the selected tile at the scene file at path, or
// at no scene when path is empty.
func (e *ScenesCollectionSourceEditor) SetSelectedScene(path string) error {
	if err := e.ready(); err != nil {
		return err
	}
	id, ok := e.SelectedID()
	if !ok {
		return ErrNoSelection
	}
	var scene *scenes.Scene
	if path != "" {
		var err error
		if scene, err = e.LoadScene(path); err != nil {
			return fmt.Errorf("editor: set scene of tile %d: %w", id, err)
		}
	}
	src := e.source
	prev := src.SceneTileScene(id)
	set := func(s *scenes.Scene) func() {
		return func() {
			if err := src.SetSceneTileScene(id, s); err != nil {
				e.log.WithError(err).Error("set scene tile scene")
			}
		}
	}
	e.undo.CreateAction("Change Scene Tile Scene")
	e.undo.AddDoMethod(set(scene))
	e.undo.AddUndoMethod(set(prev))
	e.commit()
	return nil
}

func (e *ScenesCollectionSourceEditor) SetSelectedDisplayPlaceholder(display bool) error {
	if err := e.ready(); err != nil {
		return err
	}
	id, ok := e.SelectedID()
	if !ok {
		return ErrNoSelection
	}
	src := e.source
	prev := src.SceneTileDisplayPlaceholder(id)
	if prev == display {
		return nil
	}
	set := func(v bool) func() {
		return func() {
			if err := src.SetSceneTileDisplayPlaceholder(id, v); err != nil {
				e.log.WithError(err).Error("set display placeholder")
			}
		}
	}
	e.undo.CreateAction("Change Scene Tile Display Placeholder")
	e.undo.AddDoMethod(set(display))
	e.undo.AddUndoMethod(set(prev))
	e.commit()
	return nil
}

func (e *ScenesCollectionSourceEditor) SetSourceName(name string) error {
	if err := e.ready(); err != nil {
		return err
	}
	src := e.source
	prev := src.Name()
	if prev == name {
		return nil
	}
	e.undo.CreateAction("Rename Scenes Collection Source")
	e.undo.AddDoMethod(func() { src.SetName(name) })
	e.undo.AddUndoMethod(func() { src.SetName(prev) })
	e.commit()
	return nil
}

// SetSourceID moves the edited source to another id in its tile set.
func (e *ScenesCollectionSourceEditor) SetSourceID(newID int) error {
	if err := e.ready(); err != nil {
		return err
	}
	id := e.sourceID
	if id == newID {
		return nil
	}
	if newID < 0 {
		return fmt.Errorf("editor: set source id %d -> %d: %w", id, newID, tileset.ErrInvalidID)
	}
	ts := e.tileSet
	if ts.HasSource(newID) {
		return fmt.Errorf("editor: set source id %d -> %d: %w", id, newID, tileset.ErrIDCollision)
	}
	src := e.source
	move := func(from, to int) func() {
		return func() {
			if err := ts.SetSourceID(from, to); err != nil {
				e.log.WithError(err).Error("set source id")
				return
			}
			// the editor may have been bound to another source since
			if e.source == src {
				e.sourceID = to
			}
		}
	}
	e.undo.CreateAction("Change Scenes Collection Source ID")
	e.undo.AddDoMethod(move(id, newID))
	e.undo.AddUndoMethod(move(newID, id))
	e.commit()
	return nil
}

// DropFiles adds one scene tile per dropped scene file. Other files are
// skipped. Errors of individual files are joined.
func (e *ScenesCollectionSourceEditor) DropFiles(paths []string) error {
	var errs []error
	for _, p := range paths {
		if !scenes.IsSceneFile(p) {
			e.log.WithField("path", p).Debug("ignoring dropped non-scene file")
			continue
		}
		if err := e.AddSceneTile(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *ScenesCollectionSourceEditor) Update(msg Msg) error {
	switch m := msg.(type) {
	case AddSceneTileMsg:
		return e.AddSceneTile(m.Path)
	case RemoveSceneTileMsg:
		return e.RemoveSelected()
	case SelectSceneTileMsg:
		e.Select(m.Index)
	case SetSceneTileIDMsg:
		return e.SetSelectedID(m.ID)
	case SetSceneMsg:
		return e.SetSelectedScene(m.Path)
	case SetDisplayPlaceholderMsg:
		return e.SetSelectedDisplayPlaceholder(m.Display)
	case SetSourceNameMsg:
		return e.SetSourceName(m.Name)
	case SetSourceIDMsg:
		return e.SetSourceID(m.ID)
	case DropFilesMsg:
		return e.DropFiles(m.Paths)
	default:
		return fmt.Errorf("editor: scenes collection %T: %w", msg, ErrUnknownMsg)
	}
	return nil
}
