package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/milk9111/tileset-editor/tileset"
	"github.com/milk9111/tileset-editor/undo"
	log "github.com/sirupsen/logrus"
)

type Context struct {
	TileSet     *tileset.TileSet
	TileSetPath string
	History     *undo.History
	Log         log.FieldLogger
}

// LoadTileSet opens the tile set resource at path and starts a fresh
// history for it.
func (ctx *Context) LoadTileSet(path string, maxUndo int) error {
	abs, pathErr := filepath.Abs(path)
	if pathErr != nil {
		return errors.Join(pathErr, fmt.Errorf("could not get absolute path for %s", path))
	}
	ctx.TileSetPath = abs
	ctx.Log = log.WithFields(log.Fields{
		"tileset": filepath.Base(abs),
	})

	ts, err := tileset.Load(abs)
	if err != nil {
		ctx.Log.WithError(err).Error("failed to load tile set")
		return err
	}
	ctx.TileSet = ts
	ctx.History = undo.New(maxUndo, ctx.Log)
	ctx.Log.WithField("sources", ts.SourceCount()).Debug("loaded tile set")
	return nil
}

func (ctx *Context) SaveTileSet() error {
	if err := tileset.Save(ctx.TileSetPath, ctx.TileSet); err != nil {
		ctx.Log.WithError(err).Error("failed to save tile set")
		return err
	}
	ctx.Log.Info("saved tile set")
	return nil
}

// TileSetArg is the positional tile set path shared by every command.
type TileSetArg struct {
	TileSet string `arg:"" type:"existingfile" help:"the tile set resource (.yaml)"`
}

func (a TileSetArg) load(ctx *Context) error {
	return ctx.LoadTileSet(a.TileSet, 0)
}
