package main

import (
	"fmt"
	"strconv"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/editor"
	"github.com/milk9111/tileset-editor/tileset"
)

// proxyListEntry is one row of a tier list.
type proxyListEntry struct {
	Tier     tileset.Tier
	Index    int
	Row      editor.ProxyRow
	Selected bool
}

// refInputs are the text inputs of one side of the proxy draft.
type refInputs struct {
	source *widget.TextInput
	x, y   *widget.TextInput
	alt    *widget.TextInput
}

// proxiesDialogUI is the modal view of the tile proxies manager.
type proxiesDialogUI struct {
	Overlay *widget.Container

	manager *editor.ProxiesManager
	lists   [3]*widget.List
	inputs  [2]refInputs
	report  func(err error)
	copy    func(text string)

	// dirty defers rebuilding the lists to the next frame so a list is
	// never repopulated from inside its own selection handler.
	dirty    bool
	suppress bool
}

func newProxiesDialog(theme *widget.Theme, fontFace *text.Face, manager *editor.ProxiesManager, report func(error), copyText func(string)) *proxiesDialogUI {
	d := &proxiesDialogUI{manager: manager, report: report, copy: copyText}
	manager.OnRefresh = func() { d.dirty = true }

	d.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorOverlay)),
	)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(720, 480),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dialogColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	dialog.AddChild(newLabel(fontFace, "Tile Proxies", colorText))

	listsRow := newRow(widget.DirectionHorizontal, 8)
	for _, tier := range tileset.Tiers {
		column := newRow(widget.DirectionVertical, 4)
		column.AddChild(newLabel(fontFace, fmt.Sprintf("%s-level", tier), colorText))
		d.lists[tier] = d.newTierList(tier)
		column.AddChild(d.lists[tier])
		listsRow.AddChild(column)
	}
	dialog.AddChild(listsRow)

	for _, role := range []editor.Role{editor.RoleFrom, editor.RoleTo} {
		row := newRow(widget.DirectionHorizontal, 6)
		row.AddChild(newLabel(fontFace, fmt.Sprintf("%-5s", role), colorText))
		in := &d.inputs[role]
		for _, spec := range editor.DraftSchema() {
			if spec.Role != role {
				continue
			}
			row.AddChild(newLabel(fontFace, spec.Name, colorText))
			switch spec.Field {
			case editor.FieldSourceID:
				in.source = newTextInput(fontFace, 48, func(string) { d.readDraft() })
				row.AddChild(in.source)
			case editor.FieldCoords:
				in.x = newTextInput(fontFace, 40, func(string) { d.readDraft() })
				in.y = newTextInput(fontFace, 40, func(string) { d.readDraft() })
				row.AddChild(in.x)
				row.AddChild(in.y)
			case editor.FieldAlternative:
				in.alt = newTextInput(fontFace, 40, func(string) { d.readDraft() })
				row.AddChild(in.alt)
			}
		}
		dialog.AddChild(row)
	}

	actions := newRow(widget.DirectionHorizontal, 8)
	actions.AddChild(newButton(theme, fontFace, "Add", func() {
		d.readDraft()
		d.send(editor.AddProxyMsg{})
	}))
	actions.AddChild(newButton(theme, fontFace, "Delete Selected", func() { d.send(editor.DeleteSelectedMsg{}) }))
	actions.AddChild(newButton(theme, fontFace, "Clear Invalid", func() { d.send(editor.ClearInvalidMsg{}) }))
	actions.AddChild(newButton(theme, fontFace, "Clear All", func() { d.send(editor.ClearAllMsg{}) }))
	actions.AddChild(newButton(theme, fontFace, "Copy", func() {
		if d.copy != nil {
			d.copy(d.manager.Text())
		}
	}))
	dialog.AddChild(actions)

	closeRow := newRow(widget.DirectionHorizontal, 8)
	closeRow.AddChild(newButton(theme, fontFace, "OK", func() { d.send(editor.ConfirmMsg{}) }))
	closeRow.AddChild(newButton(theme, fontFace, "Cancel", func() { d.send(editor.CancelMsg{}) }))
	dialog.AddChild(closeRow)

	d.Overlay.AddChild(dialog)
	return d
}

func (d *proxiesDialogUI) newTierList(tier tileset.Tier) *widget.List {
	list := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			entry, ok := e.(proxyListEntry)
			if !ok {
				return ""
			}
			mark := "[ ] "
			if entry.Selected {
				mark = "[x] "
			}
			return mark + entry.Row.Label()
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if d.suppress {
				return
			}
			entry, ok := args.Entry.(proxyListEntry)
			if !ok {
				return
			}
			// clicking toggles, so several rows of every tier can be selected
			d.send(editor.SelectProxyMsg{Tier: entry.Tier, Index: entry.Index, Selected: !entry.Selected})
			d.dirty = true
		}),
	)
	list.GetWidget().MinWidth = 230
	list.GetWidget().MinHeight = 220
	return list
}

func (d *proxiesDialogUI) send(msg editor.Msg) {
	if err := d.manager.Update(msg); err != nil && d.report != nil {
		d.report(err)
	}
	switch msg.(type) {
	case editor.ConfirmMsg, editor.CancelMsg:
		setVisible(d.Overlay, false)
	}
}

// Open shows the dialog for ts and starts a new session.
func (d *proxiesDialogUI) Open(ts *tileset.TileSet) {
	d.manager.PopupForTileSet(ts)
	d.writeDraft()
	setVisible(d.Overlay, true)
}

func (d *proxiesDialogUI) Visible() bool {
	return d.manager.Visible()
}

// readDraft pushes the text of every input into the draft. Unparsable
// inputs keep the current value.
func (d *proxiesDialogUI) readDraft() {
	if d.suppress {
		return
	}
	for _, role := range []editor.Role{editor.RoleFrom, editor.RoleTo} {
		in := d.inputs[role]
		cur := d.manager.Draft.From
		if role == editor.RoleTo {
			cur = d.manager.Draft.To
		}
		d.send(editor.SetDraftFieldMsg{Role: role, Field: editor.FieldSourceID, Value: parseIntOr(in.source.GetText(), cur.SourceID)})
		d.send(editor.SetDraftFieldMsg{Role: role, Field: editor.FieldCoords, Coords: common.V2i(
			parseIntOr(in.x.GetText(), cur.Coords.X),
			parseIntOr(in.y.GetText(), cur.Coords.Y),
		)})
		d.send(editor.SetDraftFieldMsg{Role: role, Field: editor.FieldAlternative, Value: parseIntOr(in.alt.GetText(), cur.Alternative)})
	}
	d.writeDraft()
}

// writeDraft shows the draft, including values clamped by the manager.
func (d *proxiesDialogUI) writeDraft() {
	d.suppress = true
	for _, role := range []editor.Role{editor.RoleFrom, editor.RoleTo} {
		in := d.inputs[role]
		ref := d.manager.Draft.From
		if role == editor.RoleTo {
			ref = d.manager.Draft.To
		}
		in.source.SetText(strconv.Itoa(ref.SourceID))
		in.x.SetText(strconv.Itoa(ref.Coords.X))
		in.y.SetText(strconv.Itoa(ref.Coords.Y))
		in.alt.SetText(strconv.Itoa(ref.Alternative))
	}
	d.suppress = false
}

// Sync rebuilds the tier lists when the manager refreshed since last frame.
func (d *proxiesDialogUI) Sync() {
	if !d.dirty {
		return
	}
	d.dirty = false
	d.suppress = true
	for _, tier := range tileset.Tiers {
		rows := d.manager.Rows(tier)
		entries := make([]any, len(rows))
		for i, row := range rows {
			entries[i] = proxyListEntry{Tier: tier, Index: i, Row: row, Selected: d.manager.IsSelected(tier, i)}
		}
		d.lists[tier].SetEntries(entries)
	}
	d.suppress = false
}
