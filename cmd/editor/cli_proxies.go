package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/tileset-editor/editor"
	"github.com/milk9111/tileset-editor/tileset"
	log "github.com/sirupsen/logrus"
	treeprint "github.com/xlab/treeprint"
	"golang.design/x/clipboard"
)

type ProxiesCmd struct {
	List    ProxiesListCmd    `cmd:"" aliases:"ls" help:"list the proxies of every tier"`
	Add     ProxiesAddCmd     `cmd:"" help:"create or overwrite a proxy, the tier follows the fields given in FROM"`
	Remove  ProxiesRemoveCmd  `cmd:"" aliases:"rm" help:"remove a proxy"`
	Resolve ProxiesResolveCmd `cmd:"" help:"show what a tile reference resolves to"`
	Cleanup ProxiesCleanupCmd `cmd:"" help:"remove proxies that reference missing sources, tiles or alternatives"`
	Clear   ProxiesClearCmd   `cmd:"" help:"remove every proxy"`
}

// EditFlags are shared by the commands that change the tile set.
type EditFlags struct {
	DryRun bool `short:"n" help:"print the result without saving it"`
}

func openProxies(ctx *Context, arg TileSetArg) (*editor.ProxiesManager, error) {
	if err := arg.load(ctx); err != nil {
		return nil, err
	}
	d := editor.NewProxiesManager(ctx.History, ctx.Log)
	d.PopupForTileSet(ctx.TileSet)
	return d, nil
}

// finish saves the session, or rolls it back on a dry run.
func (f EditFlags) finish(ctx *Context, d *editor.ProxiesManager) error {
	fmt.Print(d.Text())
	if f.DryRun {
		undone := d.Cancel()
		ctx.Log.WithField("actions", undone).Info("dry run, changes discarded")
		return nil
	}
	d.Confirm()
	return ctx.SaveTileSet()
}

type ProxiesListCmd struct {
	TileSetArg `embed:""`

	Filter string `short:"f" help:"tengo expression over tier, from_source, from_x, from_y, from_alt, to_source, to_x, to_y, to_alt and valid"`
	Tree   bool   `short:"t" help:"print the proxies as a tree grouped by tier"`
	Copy   bool   `short:"c" help:"also copy the listing to the clipboard"`
}

func (ls *ProxiesListCmd) Run(ctx *Context) error {
	d, err := openProxies(ctx, ls.TileSetArg)
	if err != nil {
		return err
	}

	var filter *proxyFilter
	if ls.Filter != "" {
		if filter, err = compileProxyFilter(ls.Filter); err != nil {
			log.WithError(err).Error("could not compile filter")
			return err
		}
	}

	tree := treeprint.New()
	var flat strings.Builder
	for _, tier := range tileset.Tiers {
		var branch treeprint.Tree
		for _, row := range d.Rows(tier) {
			if filter != nil {
				ok, err := filter.Match(row)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			if branch == nil {
				branch = tree.AddBranch(tier.String())
			}
			if row.Valid {
				branch.AddNode(row.Entry.String())
			} else {
				branch.AddMetaNode("invalid", row.Entry.String())
			}
			fmt.Fprintf(&flat, "%s\t%s\n", tier, row.Label())
		}
	}

	out := flat.String()
	if ls.Tree {
		out = tree.String()
	}
	fmt.Print(out)

	if ls.Copy {
		if err := clipboard.Init(); err != nil {
			log.WithError(err).Warn("clipboard unavailable")
			return nil
		}
		clipboard.Write(clipboard.FmtText, []byte(out))
	}
	return nil
}

type ProxiesAddCmd struct {
	TileSetArg `embed:""`
	EditFlags  `embed:""`

	From string `arg:"" help:"the reference to replace: source, source:x,y or source:x,y:alt"`
	To   string `arg:"" help:"the replacement, read at the same tier as FROM"`
}

func (add *ProxiesAddCmd) Run(ctx *Context) error {
	from, err := parseTileRef(add.From)
	if err != nil {
		return err
	}
	to, err := parseTileRef(add.To)
	if err != nil {
		return err
	}
	d, err := openProxies(ctx, add.TileSetArg)
	if err != nil {
		return err
	}

	msgs := []editor.Msg{
		editor.SetDraftFieldMsg{Role: editor.RoleFrom, Field: editor.FieldSourceID, Value: from.SourceID},
		editor.SetDraftFieldMsg{Role: editor.RoleFrom, Field: editor.FieldCoords, Coords: from.Coords},
		editor.SetDraftFieldMsg{Role: editor.RoleFrom, Field: editor.FieldAlternative, Value: from.Alternative},
		editor.SetDraftFieldMsg{Role: editor.RoleTo, Field: editor.FieldSourceID, Value: to.SourceID},
		editor.SetDraftFieldMsg{Role: editor.RoleTo, Field: editor.FieldCoords, Coords: to.Coords},
		editor.SetDraftFieldMsg{Role: editor.RoleTo, Field: editor.FieldAlternative, Value: to.Alternative},
		editor.AddProxyMsg{},
	}
	for _, msg := range msgs {
		if err := d.Update(msg); err != nil {
			ctx.Log.WithError(err).Error("could not add proxy")
			return err
		}
	}
	return add.finish(ctx, d)
}

type ProxiesRemoveCmd struct {
	TileSetArg `embed:""`
	EditFlags  `embed:""`

	From []string `arg:"" help:"the keys of the proxies to remove"`
}

func (rm *ProxiesRemoveCmd) Run(ctx *Context) error {
	d, err := openProxies(ctx, rm.TileSetArg)
	if err != nil {
		return err
	}
	for _, s := range rm.From {
		ref, err := parseTileRef(s)
		if err != nil {
			return err
		}
		tier, _ := ref.Tier()
		key := ref.Key(tier)
		found := false
		for i, row := range d.Rows(tier) {
			if row.Entry.From == key {
				d.Select(tier, i, true)
				found = true
				break
			}
		}
		if !found {
			ctx.Log.WithField("key", key.Format(tier)).WithField("tier", tier).Warn("no such proxy")
		}
	}
	if len(d.SelectedEntries()) == 0 {
		return nil
	}
	if err := d.DeleteSelected(); err != nil {
		return err
	}
	return rm.finish(ctx, d)
}

type ProxiesResolveCmd struct {
	TileSetArg `embed:""`

	Ref string `arg:"" help:"source, source:x,y or source:x,y:alt"`
}

func (r *ProxiesResolveCmd) Run(ctx *Context) error {
	ref, err := parseTileRef(r.Ref)
	if err != nil {
		return err
	}
	if err := r.load(ctx); err != nil {
		return err
	}
	tier, ok := ref.Tier()
	if !ok {
		return fmt.Errorf("tile ref %q: %w", r.Ref, tileset.ErrInvalidID)
	}
	got, proxied := ctx.TileSet.Resolve(ref, tier)
	if !proxied {
		fmt.Printf("%s (no proxy)\n", ref.Format(tier))
		return nil
	}
	fmt.Printf("%s -> %s\n", ref.Format(tier), got.Format(tier))
	return nil
}

type ProxiesCleanupCmd struct {
	TileSetArg `embed:""`
	EditFlags  `embed:""`
}

func (c *ProxiesCleanupCmd) Run(ctx *Context) error {
	d, err := openProxies(ctx, c.TileSetArg)
	if err != nil {
		return err
	}
	before := ctx.TileSet.ProxyCount()
	if err := d.Update(editor.ClearInvalidMsg{}); err != nil {
		return err
	}
	ctx.Log.WithField("removed", before-ctx.TileSet.ProxyCount()).Info("removed invalid proxies")
	return c.finish(ctx, d)
}

type ProxiesClearCmd struct {
	TileSetArg `embed:""`
	EditFlags  `embed:""`
}

func (c *ProxiesClearCmd) Run(ctx *Context) error {
	d, err := openProxies(ctx, c.TileSetArg)
	if err != nil {
		return err
	}
	if err := d.Update(editor.ClearAllMsg{}); err != nil {
		return err
	}
	return c.finish(ctx, d)
}
