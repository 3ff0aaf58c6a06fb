package main

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tileset-editor/editor"
	"github.com/milk9111/tileset-editor/scenes"
)

type sceneTileEntry struct {
	Index int
	Row   editor.SceneTileRow
}

// scenesPanelUI is the view of the scenes collection source editor: the
// scene tile list, a preview of the selected tile, its properties and the
// scene files available to add.
type scenesPanelUI struct {
	Container *widget.Container

	editor *editor.ScenesCollectionSourceEditor
	report func(err error)

	list           *widget.List
	preview        *widget.Graphic
	emptyPreview   *ebiten.Image
	nameInput      *widget.TextInput
	sourceIDInput  *widget.TextInput
	idInput        *widget.TextInput
	placeholderBtn *widget.Button

	fileList   *widget.List
	sceneFiles []scenes.Info
	chosenFile string

	dirty        bool
	iconDirty    bool
	detailsDirty bool
	suppress     bool
}

func newScenesPanel(theme *widget.Theme, fontFace *text.Face, ed *editor.ScenesCollectionSourceEditor, thumbSize int, report func(error)) *scenesPanelUI {
	p := &scenesPanelUI{editor: ed, report: report}
	ed.OnRefresh = func() {
		p.dirty = true
		p.detailsDirty = true
	}
	ed.OnIconChanged = func(index int) {
		if index == ed.SelectedIndex() {
			p.iconDirty = true
		}
	}

	p.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(260, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)

	p.Container.AddChild(newLabel(fontFace, "Scenes Collection", color.White))
	nameRow := newRow(widget.DirectionHorizontal, 6)
	nameRow.AddChild(newLabel(fontFace, "Name", color.White))
	p.nameInput = newTextInput(fontFace, 140, func(v string) { p.send(editor.SetSourceNameMsg{Name: v}) })
	nameRow.AddChild(p.nameInput)
	p.Container.AddChild(nameRow)

	sourceRow := newRow(widget.DirectionHorizontal, 6)
	sourceRow.AddChild(newLabel(fontFace, "Source ID", color.White))
	p.sourceIDInput = newTextInput(fontFace, 60, func(v string) {
		if id, err := strconv.Atoi(v); err == nil {
			p.send(editor.SetSourceIDMsg{ID: id})
		}
		p.detailsDirty = true
	})
	sourceRow.AddChild(p.sourceIDInput)
	p.Container.AddChild(sourceRow)

	p.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(sceneTileEntry); ok {
				return entry.Row.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if p.suppress {
				return
			}
			if entry, ok := args.Entry.(sceneTileEntry); ok {
				p.send(editor.SelectSceneTileMsg{Index: entry.Index})
				p.detailsDirty = true
				p.iconDirty = true
			}
		}),
	)
	p.list.GetWidget().MinHeight = 140
	p.Container.AddChild(p.list)

	p.emptyPreview = ebiten.NewImage(thumbSize, thumbSize)
	p.emptyPreview.Fill(color.RGBA{60, 60, 60, 255})
	p.preview = widget.NewGraphic(
		widget.GraphicOpts.Image(p.emptyPreview),
		widget.GraphicOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(thumbSize, thumbSize),
		),
	)
	p.Container.AddChild(p.preview)

	idRow := newRow(widget.DirectionHorizontal, 6)
	idRow.AddChild(newLabel(fontFace, "Scene ID", color.White))
	p.idInput = newTextInput(fontFace, 60, func(v string) {
		if id, err := strconv.Atoi(v); err == nil {
			p.send(editor.SetSceneTileIDMsg{ID: id})
		}
		p.detailsDirty = true
	})
	idRow.AddChild(p.idInput)
	p.Container.AddChild(idRow)

	p.placeholderBtn = newButton(theme, fontFace, "Display Placeholder: Off", func() {
		id, ok := ed.SelectedID()
		if !ok {
			return
		}
		p.send(editor.SetDisplayPlaceholderMsg{Display: !ed.Source().SceneTileDisplayPlaceholder(id)})
	})
	p.Container.AddChild(p.placeholderBtn)

	tileButtons := newRow(widget.DirectionHorizontal, 6)
	tileButtons.AddChild(newButton(theme, fontFace, "Add", func() { p.send(editor.AddSceneTileMsg{Path: p.chosenFile}) }))
	tileButtons.AddChild(newButton(theme, fontFace, "Set Scene", func() { p.send(editor.SetSceneMsg{Path: p.chosenFile}) }))
	tileButtons.AddChild(newButton(theme, fontFace, "Remove", func() { p.send(editor.RemoveSceneTileMsg{}) }))
	p.Container.AddChild(tileButtons)

	p.Container.AddChild(newLabel(fontFace, "Scene Files", color.White))
	p.fileList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if info, ok := e.(scenes.Info); ok {
				return info.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if info, ok := args.Entry.(scenes.Info); ok {
				p.chosenFile = info.Path
			}
		}),
	)
	p.fileList.GetWidget().MinHeight = 100
	p.Container.AddChild(p.fileList)

	return p
}

func (p *scenesPanelUI) send(msg editor.Msg) {
	if err := p.editor.Update(msg); err != nil && p.report != nil {
		p.report(err)
	}
}

// SetSceneFiles replaces the scene files offered for adding.
func (p *scenesPanelUI) SetSceneFiles(infos []scenes.Info) {
	p.sceneFiles = infos
	entries := make([]any, len(infos))
	for i, info := range infos {
		entries[i] = info
	}
	p.fileList.SetEntries(entries)
	for _, info := range infos {
		if info.Path == p.chosenFile {
			p.fileList.SetSelectedEntry(info)
			return
		}
	}
	p.chosenFile = ""
}

// Sync brings the widgets in line with the editor state.
func (p *scenesPanelUI) Sync() {
	if p.dirty {
		p.dirty = false
		p.suppress = true
		rows := p.editor.Rows()
		entries := make([]any, len(rows))
		for i, row := range rows {
			entries[i] = sceneTileEntry{Index: i, Row: row}
		}
		p.list.SetEntries(entries)
		if sel := p.editor.SelectedIndex(); sel >= 0 && sel < len(entries) {
			p.list.SetSelectedEntry(entries[sel])
		}
		p.suppress = false
		p.iconDirty = true
	}
	if p.detailsDirty {
		p.detailsDirty = false
		p.syncDetails()
	}
	if p.iconDirty {
		p.iconDirty = false
		p.preview.Image = p.emptyPreview
		if sel := p.editor.SelectedIndex(); sel >= 0 {
			if icon := p.editor.Rows()[sel].Icon; icon != nil {
				p.preview.Image = ebiten.NewImageFromImage(icon)
			}
		}
	}
}

func (p *scenesPanelUI) syncDetails() {
	src := p.editor.Source()
	if src == nil {
		return
	}
	p.nameInput.SetText(src.Name())
	p.sourceIDInput.SetText(strconv.Itoa(p.editor.SourceID()))

	id, ok := p.editor.SelectedID()
	if !ok {
		p.idInput.SetText("")
		p.placeholderBtn.Text().Label = "Display Placeholder: Off"
		return
	}
	p.idInput.SetText(strconv.Itoa(id))
	state := "Off"
	if src.SceneTileDisplayPlaceholder(id) {
		state = "On"
	}
	p.placeholderBtn.Text().Label = fmt.Sprintf("Display Placeholder: %s", state)
}
