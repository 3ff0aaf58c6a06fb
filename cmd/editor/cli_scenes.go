package main

import (
	"fmt"

	"github.com/milk9111/tileset-editor/editor"
	"github.com/milk9111/tileset-editor/tileset"
)

type ScenesCmd struct {
	List      ScenesListCmd      `cmd:"" aliases:"ls" help:"list the scene tiles of a source"`
	Add       ScenesAddCmd       `cmd:"" help:"add one scene tile per scene file"`
	Remove    ScenesRemoveCmd    `cmd:"" aliases:"rm" help:"remove a scene tile"`
	SetID     ScenesSetIDCmd     `cmd:"" name:"set-id" help:"change the id of a scene tile"`
	NewSource ScenesNewSourceCmd `cmd:"" name:"new-source" help:"add an empty scenes collection source"`
}

// SourceArg selects the scenes collection source to edit.
type SourceArg struct {
	Source int `arg:"" help:"id of the scenes collection source"`
}

func openScenes(ctx *Context, ts TileSetArg, src SourceArg) (*editor.ScenesCollectionSourceEditor, error) {
	if err := ts.load(ctx); err != nil {
		return nil, err
	}
	e := editor.NewScenesCollectionSourceEditor(ctx.History, nil, ctx.Log)
	if err := e.Edit(ctx.TileSet, src.Source); err != nil {
		ctx.Log.WithError(err).Error("could not open scenes collection source")
		return nil, err
	}
	return e, nil
}

func printSceneTiles(e *editor.ScenesCollectionSourceEditor) {
	src := e.Source()
	for _, row := range e.Rows() {
		placeholder := ""
		if src.SceneTileDisplayPlaceholder(row.ID) {
			placeholder = "\tplaceholder"
		}
		fmt.Printf("%d\t%s\t%s%s\n", row.ID, row.Label, row.ScenePath, placeholder)
	}
}

func (f EditFlags) finishScenes(ctx *Context, e *editor.ScenesCollectionSourceEditor) error {
	printSceneTiles(e)
	if f.DryRun {
		ctx.Log.Info("dry run, changes discarded")
		return nil
	}
	return ctx.SaveTileSet()
}

type ScenesListCmd struct {
	TileSetArg `embed:""`
	SourceArg  `embed:""`
}

func (ls *ScenesListCmd) Run(ctx *Context) error {
	e, err := openScenes(ctx, ls.TileSetArg, ls.SourceArg)
	if err != nil {
		return err
	}
	printSceneTiles(e)
	return nil
}

type ScenesAddCmd struct {
	TileSetArg `embed:""`
	SourceArg  `embed:""`
	EditFlags  `embed:""`

	Scenes []string `arg:"" type:"existingfile" help:"scene files (.yaml); other files are skipped"`
}

func (add *ScenesAddCmd) Run(ctx *Context) error {
	e, err := openScenes(ctx, add.TileSetArg, add.SourceArg)
	if err != nil {
		return err
	}
	if err := e.Update(editor.DropFilesMsg{Paths: add.Scenes}); err != nil {
		ctx.Log.WithError(err).Error("could not add every scene")
		return err
	}
	return add.finishScenes(ctx, e)
}

// selectSceneTile selects the row showing scene tile id.
func selectSceneTile(e *editor.ScenesCollectionSourceEditor, id int) error {
	for i, row := range e.Rows() {
		if row.ID == id {
			return e.Update(editor.SelectSceneTileMsg{Index: i})
		}
	}
	return fmt.Errorf("scene tile %d: %w", id, tileset.ErrSceneTileNotFound)
}

type ScenesRemoveCmd struct {
	TileSetArg `embed:""`
	SourceArg  `embed:""`
	EditFlags  `embed:""`

	ID int `arg:"" help:"the scene tile id"`
}

func (rm *ScenesRemoveCmd) Run(ctx *Context) error {
	e, err := openScenes(ctx, rm.TileSetArg, rm.SourceArg)
	if err != nil {
		return err
	}
	if err := selectSceneTile(e, rm.ID); err != nil {
		return err
	}
	if err := e.Update(editor.RemoveSceneTileMsg{}); err != nil {
		return err
	}
	return rm.finishScenes(ctx, e)
}

type ScenesSetIDCmd struct {
	TileSetArg `embed:""`
	SourceArg  `embed:""`
	EditFlags  `embed:""`

	ID    int `arg:"" help:"the current scene tile id"`
	NewID int `arg:"" help:"the new, unused id"`
}

func (s *ScenesSetIDCmd) Run(ctx *Context) error {
	e, err := openScenes(ctx, s.TileSetArg, s.SourceArg)
	if err != nil {
		return err
	}
	if err := selectSceneTile(e, s.ID); err != nil {
		return err
	}
	if err := e.Update(editor.SetSceneTileIDMsg{ID: s.NewID}); err != nil {
		ctx.Log.WithError(err).WithField("id", s.ID).Error("could not change scene tile id")
		return err
	}
	return s.finishScenes(ctx, e)
}

type ScenesNewSourceCmd struct {
	TileSetArg `embed:""`
	EditFlags  `embed:""`

	Name string `short:"N" help:"name of the new source"`
	ID   int    `default:"-1" help:"source id, the next free one when negative"`
}

func (n *ScenesNewSourceCmd) Run(ctx *Context) error {
	if err := n.load(ctx); err != nil {
		return err
	}
	id, err := ctx.TileSet.AddSource(tileset.NewScenesCollectionSource(), n.ID)
	if err != nil {
		ctx.Log.WithError(err).Error("could not add source")
		return err
	}
	e := editor.NewScenesCollectionSourceEditor(ctx.History, nil, ctx.Log)
	if err := e.Edit(ctx.TileSet, id); err != nil {
		return err
	}
	if n.Name != "" {
		if err := e.Update(editor.SetSourceNameMsg{Name: n.Name}); err != nil {
			return err
		}
	}
	fmt.Printf("added scenes collection source %d\n", id)
	if n.DryRun {
		return nil
	}
	return ctx.SaveTileSet()
}
