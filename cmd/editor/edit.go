package main

import (
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

type EditCmd struct {
	TileSetArg `embed:""`

	ScenesDir string `short:"s" type:"existingdir" help:"directory offering scene files, the tile set's directory by default"`
	MaxUndo   int    `default:"100" help:"number of actions kept for undo"`
	ThumbSize int    `default:"64" help:"size of scene previews in pixels"`
	Width     int    `default:"1280" help:"window width"`
	Height    int    `default:"800" help:"window height"`
	NoWatch   bool   `help:"do not reload files changed on disk"`
}

func (e *EditCmd) Run(ctx *Context) error {
	if err := ctx.LoadTileSet(e.TileSet, e.MaxUndo); err != nil {
		return err
	}
	if e.ScenesDir == "" {
		e.ScenesDir = filepath.Dir(ctx.TileSetPath)
	}

	game, err := NewEditorGame(ctx, e)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(e.Width, e.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(game.title())
	return ebiten.RunGame(game)
}
