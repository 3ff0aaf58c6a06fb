package main

import (
	"errors"
	"image/color"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tileset-editor/editor"
	"github.com/milk9111/tileset-editor/preview"
	"github.com/milk9111/tileset-editor/scenes"
	"github.com/milk9111/tileset-editor/tileset"
	log "github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
)

// EditorGame is the Ebiten game hosting the tile set dialogs.
type EditorGame struct {
	ctx *Context
	log log.FieldLogger

	previews     *preview.Generator
	watcher      *scenes.Watcher
	scenesDir    string
	proxies      *editor.ProxiesManager
	scenesEditor *editor.ScenesCollectionSourceEditor
	view         *editorUI

	selectedSource int
	savedVersion   uint64
	seenVersion    uint64
	lastSave       time.Time
	lastTitle      string
	clipboardOK    bool
}

func NewEditorGame(ctx *Context, cmd *EditCmd) (*EditorGame, error) {
	g := &EditorGame{
		ctx:            ctx,
		log:            ctx.Log,
		scenesDir:      cmd.ScenesDir,
		selectedSource: tileset.InvalidSource,
	}
	g.previews = preview.NewGenerator(cmd.ThumbSize, ctx.Log)
	g.proxies = editor.NewProxiesManager(ctx.History, ctx.Log)
	g.scenesEditor = editor.NewScenesCollectionSourceEditor(ctx.History, g.previews, ctx.Log)

	if err := clipboard.Init(); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable, copy is disabled")
	} else {
		g.clipboardOK = true
	}

	view, err := buildEditorUI(g, cmd.ThumbSize)
	if err != nil {
		g.previews.Close()
		return nil, err
	}
	g.view = view
	g.refreshSceneFiles()

	if !cmd.NoWatch {
		w, err := scenes.NewWatcher(filepath.Dir(ctx.TileSetPath), g.scenesDir)
		if err != nil {
			g.log.WithError(err).Warn("file watcher unavailable")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *EditorGame) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.previews.Close()
}

func (g *EditorGame) dirty() bool {
	return g.ctx.History.Version() != g.savedVersion
}

func (g *EditorGame) title() string {
	name := filepath.Base(g.ctx.TileSetPath)
	if g.dirty() {
		name += " *"
	}
	return "Tileset Editor - " + name
}

func (g *EditorGame) report(err error) {
	if err == nil {
		return
	}
	g.log.WithError(err).Warn("edit rejected")
	g.view.SetStatus("error: " + err.Error())
}

func (g *EditorGame) selectSource(id int) {
	g.selectedSource = id
	if _, ok := g.ctx.TileSet.ScenesCollectionSource(id); !ok {
		setVisible(g.view.scenes.Container, false)
		return
	}
	if err := g.scenesEditor.Edit(g.ctx.TileSet, id); err != nil {
		g.report(err)
		return
	}
	setVisible(g.view.scenes.Container, true)
}

func (g *EditorGame) openProxies() {
	g.view.proxies.Open(g.ctx.TileSet)
}

func (g *EditorGame) undo() {
	if !g.ctx.History.Undo() {
		g.view.SetStatus("nothing to undo")
	}
}

func (g *EditorGame) redo() {
	if !g.ctx.History.Redo() {
		g.view.SetStatus("nothing to redo")
	}
}

// catchUp follows changes made through the history since the last frame,
// such as a renamed source or a source id restored by undo.
func (g *EditorGame) catchUp() {
	v := g.ctx.History.Version()
	if v == g.seenVersion {
		return
	}
	g.seenVersion = v
	g.view.sourcesDirty = true
	if g.scenesEditor.Source() != nil && g.view.scenes.Container.GetWidget().Visibility == widget.Visibility_Show {
		g.selectedSource = g.scenesEditor.SourceID()
	}
}

func (g *EditorGame) save() {
	if err := g.ctx.SaveTileSet(); err != nil {
		g.report(err)
		return
	}
	g.savedVersion = g.ctx.History.Version()
	g.lastSave = time.Now()
	g.view.SetStatus("saved " + filepath.Base(g.ctx.TileSetPath))
}

func (g *EditorGame) copyText(s string) {
	if !g.clipboardOK {
		g.report(errors.New("clipboard unavailable"))
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	g.view.SetStatus("copied tile proxies")
}

func (g *EditorGame) refreshSceneFiles() {
	infos, err := scenes.List(g.scenesDir)
	if err != nil {
		g.log.WithError(err).WithField("dir", g.scenesDir).Warn("could not list scene files")
		return
	}
	g.view.scenes.SetSceneFiles(infos)
}

// reload replaces the tile set with its state on disk. Unsaved edits win
// over the file.
func (g *EditorGame) reload() {
	if g.dirty() {
		g.log.Warn("tile set changed on disk, keeping unsaved edits")
		g.view.SetStatus("tile set changed on disk, save to overwrite")
		return
	}
	ts, err := tileset.Load(g.ctx.TileSetPath)
	if err != nil {
		g.report(err)
		return
	}
	if g.proxies.Visible() {
		g.proxies.Confirm()
		setVisible(g.view.proxies.Overlay, false)
	}
	g.ctx.TileSet = ts
	g.ctx.History.Clear()
	g.savedVersion = g.ctx.History.Version()
	g.seenVersion = g.savedVersion
	g.view.sourcesDirty = true
	g.selectSource(g.selectedSource)
	g.view.SetStatus("reloaded " + filepath.Base(g.ctx.TileSetPath))
}

func (g *EditorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.fileChanged(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("file watcher")
			}
		default:
			return
		}
	}
}

func (g *EditorGame) fileChanged(path string) {
	g.log.WithField("path", path).Debug("file changed on disk")
	if path == filepath.ToSlash(g.ctx.TileSetPath) {
		if time.Since(g.lastSave) > time.Second {
			g.reload()
		}
		return
	}

	g.refreshSceneFiles()
	touched := false
	if scenes.IsSceneFile(path) {
		touched = g.reloadScene(path)
	}
	src := g.scenesEditor.Source()
	if src == nil {
		return
	}
	for _, id := range src.SceneTileIDs() {
		scene := src.SceneTileScene(id)
		if scene == nil {
			continue
		}
		if scene.ResourcePath() == path || filepath.ToSlash(scene.SpritePath()) == path {
			g.previews.Invalidate(scene.ResourcePath())
			touched = true
		}
	}
	if touched {
		g.scenesEditor.Refresh()
	}
}

// reloadScene re-points every scene tile using the scene file at path to a
// fresh load of it. A file that fails to load keeps the old scene.
func (g *EditorGame) reloadScene(path string) bool {
	fresh, err := scenes.Load(filepath.FromSlash(path))
	if err != nil {
		g.log.WithError(err).WithField("path", path).Debug("keeping previous scene")
		return false
	}
	touched := false
	for _, id := range g.ctx.TileSet.SourceIDs() {
		if src, ok := g.ctx.TileSet.ScenesCollectionSource(id); ok {
			if len(src.ReplaceScene(path, fresh)) > 0 {
				touched = true
			}
		}
	}
	if touched {
		g.previews.Invalidate(path)
	}
	return touched
}

func (g *EditorGame) hotkeysSuppressed() bool {
	if g.proxies.Visible() {
		return true
	}
	if fw := g.view.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func (g *EditorGame) Update() error {
	g.previews.Poll()
	g.drainWatcher()

	if !g.hotkeysSuppressed() && ebiten.IsKeyPressed(ebiten.KeyControl) {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyZ) && ebiten.IsKeyPressed(ebiten.KeyShift):
			g.redo()
		case inpututil.IsKeyJustPressed(ebiten.KeyZ):
			g.undo()
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			g.redo()
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.save()
		}
	}

	g.view.ui.Update()
	g.catchUp()
	g.view.Sync(g.ctx.TileSet, g.selectedSource)

	if t := g.title(); t != g.lastTitle {
		g.lastTitle = t
		ebiten.SetWindowTitle(t)
	}
	return nil
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 24, 28, 255})
	g.view.ui.Draw(screen)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
