package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tileset-editor/tileset"
	"golang.org/x/image/font/gofont/goregular"
)

type sourceEntry struct {
	ID    int
	Label string
}

// editorUI is the widget tree of the editor window.
type editorUI struct {
	ui      *ebitenui.UI
	sources *widget.List
	status  *widget.Label
	proxies *proxiesDialogUI
	scenes  *scenesPanelUI

	sourcesDirty bool
	suppress     bool
}

func buildEditorUI(g *EditorGame, thumbSize int) (*editorUI, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)
	theme := ui.PrimaryTheme

	v := &editorUI{ui: ui, sourcesDirty: true}

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 400),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchVertical:    true,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	leftPanel.AddChild(newLabel(&fontFace, "Sources", color.White))
	v.sources = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(sourceEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if v.suppress {
				return
			}
			if entry, ok := args.Entry.(sourceEntry); ok {
				g.selectSource(entry.ID)
			}
		}),
	)
	v.sources.GetWidget().MinHeight = 200
	leftPanel.AddChild(v.sources)

	leftPanel.AddChild(newButton(theme, &fontFace, "Tile Proxies...", g.openProxies))
	history := newRow(widget.DirectionHorizontal, 6)
	history.AddChild(newButton(theme, &fontFace, "Undo", g.undo))
	history.AddChild(newButton(theme, &fontFace, "Redo", g.redo))
	history.AddChild(newButton(theme, &fontFace, "Save", g.save))
	leftPanel.AddChild(history)

	v.status = newLabel(&fontFace, "", color.White)
	v.status.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}

	v.scenes = newScenesPanel(theme, &fontFace, g.scenesEditor, thumbSize, g.report)
	v.scenes.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	setVisible(v.scenes.Container, false)

	v.proxies = newProxiesDialog(theme, &fontFace, g.proxies, g.report, g.copyText)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(leftPanel)
	root.AddChild(v.scenes.Container)
	root.AddChild(v.status)
	root.AddChild(v.proxies.Overlay)
	ui.Container = root
	return v, nil
}

func (v *editorUI) SetStatus(msg string) {
	v.status.Label = msg
}

// Sync rebuilds stale widgets. Called once per frame after the UI update.
func (v *editorUI) Sync(ts *tileset.TileSet, selected int) {
	if v.sourcesDirty {
		v.sourcesDirty = false
		v.suppress = true
		var entries []any
		var current any
		for _, id := range ts.SourceIDs() {
			src, _ := ts.Source(id)
			kind := "atlas"
			if _, ok := src.(*tileset.ScenesCollectionSource); ok {
				kind = "scenes"
			}
			entry := sourceEntry{ID: id, Label: fmt.Sprintf("%s (%s)", sourceLabel(id, src), kind)}
			entries = append(entries, entry)
			if id == selected {
				current = entry
			}
		}
		v.sources.SetEntries(entries)
		if current != nil {
			v.sources.SetSelectedEntry(current)
		}
		v.suppress = false
	}
	v.proxies.Sync()
	v.scenes.Sync()
}
