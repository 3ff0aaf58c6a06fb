package editor

import (
	"fmt"
	"strings"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/tileset"
	"github.com/sirupsen/logrus"
)

type (
	AddProxyMsg       struct{}
	DeleteSelectedMsg struct{}
	ClearInvalidMsg   struct{}
	ClearAllMsg       struct{}
	ConfirmMsg        struct{}
	CancelMsg         struct{}

	SetDraftFieldMsg struct {
		Role   Role
		Field  DraftField
		Value  int
		Coords common.Vector2i
	}

	SelectProxyMsg struct {
		Tier     tileset.Tier
		Index    int
		Selected bool
	}
)

func (AddProxyMsg) isMsg()       {}
func (DeleteSelectedMsg) isMsg() {}
func (ClearInvalidMsg) isMsg()   {}
func (ClearAllMsg) isMsg()       {}
func (ConfirmMsg) isMsg()        {}
func (CancelMsg) isMsg()         {}
func (SetDraftFieldMsg) isMsg()  {}
func (SelectProxyMsg) isMsg()    {}

// ProxyRow is one displayed proxy. Valid is computed against the live tile
// set at refresh time.
type ProxyRow struct {
	Entry tileset.ProxyEntry
	Valid bool
}

func (r ProxyRow) Label() string {
	if r.Valid {
		return r.Entry.String()
	}
	return r.Entry.String() + "  (invalid)"
}

type proxyKey struct {
	tier tileset.Tier
	from tileset.TileRef
}

// ProxiesManager is the tile proxies manager dialog. Every mutation is one
// action on the command stack; cancelling the dialog undoes the actions
// committed since it was opened.
type ProxiesManager struct {
	log     logrus.FieldLogger
	undo    UndoRedo
	tileSet *tileset.TileSet

	Draft ProxyDraft

	rows      [3][]ProxyRow
	selected  map[proxyKey]bool
	committed int
	visible   bool

	// OnRefresh is called after the rows were rebuilt.
	OnRefresh func()
}

func NewProxiesManager(history UndoRedo, log logrus.FieldLogger) *ProxiesManager {
	return &ProxiesManager{
		log:      orStandard(log).WithField("dialog", "tile_proxies"),
		undo:     history,
		Draft:    NewProxyDraft(),
		selected: make(map[proxyKey]bool),
	}
}

// PopupForTileSet opens the dialog on ts and starts a new session.
func (d *ProxiesManager) PopupForTileSet(ts *tileset.TileSet) {
	d.tileSet = ts
	d.committed = 0
	d.selected = make(map[proxyKey]bool)
	d.visible = true
	d.Refresh()
}

func (d *ProxiesManager) Visible() bool             { return d.visible }
func (d *ProxiesManager) CommittedActions() int     { return d.committed }
func (d *ProxiesManager) TileSet() *tileset.TileSet { return d.tileSet }

func (d *ProxiesManager) Rows(tier tileset.Tier) []ProxyRow {
	if !tier.Valid() {
		return nil
	}
	return d.rows[tier]
}

// Refresh rebuilds the rows from the tile set. Selections of entries that
// no longer exist are dropped.
func (d *ProxiesManager) Refresh() {
	for i := range d.rows {
		d.rows[i] = nil
	}
	if d.tileSet != nil {
		for _, tier := range tileset.Tiers {
			for _, e := range d.tileSet.Proxies(tier) {
				d.rows[tier] = append(d.rows[tier], ProxyRow{Entry: e, Valid: d.tileSet.IsProxyValid(e)})
			}
		}
	}
	for k := range d.selected {
		if d.tileSet == nil || !d.tileSet.HasProxy(k.tier, k.from) {
			delete(d.selected, k)
		}
	}
	if d.OnRefresh != nil {
		d.OnRefresh()
	}
}

func (d *ProxiesManager) Select(tier tileset.Tier, index int, selected bool) {
	rows := d.Rows(tier)
	if index < 0 || index >= len(rows) {
		return
	}
	k := proxyKey{tier: tier, from: rows[index].Entry.From}
	if selected {
		d.selected[k] = true
	} else {
		delete(d.selected, k)
	}
}

func (d *ProxiesManager) IsSelected(tier tileset.Tier, index int) bool {
	rows := d.Rows(tier)
	if index < 0 || index >= len(rows) {
		return false
	}
	return d.selected[proxyKey{tier: tier, from: rows[index].Entry.From}]
}

// SelectedEntries lists the selected proxies in display order.
func (d *ProxiesManager) SelectedEntries() []tileset.ProxyEntry {
	var out []tileset.ProxyEntry
	for _, tier := range tileset.Tiers {
		for _, row := range d.rows[tier] {
			if d.selected[proxyKey{tier: tier, from: row.Entry.From}] {
				out = append(out, row.Entry)
			}
		}
	}
	return out
}

// AddProxy creates a proxy from the draft at the tier implied by which
// "from" fields are set. The draft is left as is.
func (d *ProxiesManager) AddProxy() error {
	if d.tileSet == nil {
		return ErrNoTileSet
	}
	tier, ok := d.Draft.Tier()
	if !ok {
		return ErrIncompleteProxy
	}
	from := d.Draft.From.Key(tier)
	to := d.Draft.To.Key(tier)
	if from == to {
		return fmt.Errorf("editor: add %s proxy %s: %w", tier, from.Format(tier), tileset.ErrSelfProxy)
	}

	ts := d.tileSet
	prev, existed := ts.Proxy(tier, from)
	d.undo.CreateAction(fmt.Sprintf("Create %s-level Tile Proxy", tier))
	d.undo.AddDoMethod(func() { d.setProxy(ts, tier, from, to) })
	if existed {
		d.undo.AddUndoMethod(func() { d.setProxy(ts, tier, from, prev) })
	} else {
		d.undo.AddUndoMethod(func() { ts.RemoveProxy(tier, from) })
	}
	d.commit()
	return nil
}

// DeleteSelected removes every selected proxy in one action.
func (d *ProxiesManager) DeleteSelected() error {
	if d.tileSet == nil {
		return ErrNoTileSet
	}
	entries := d.SelectedEntries()
	if len(entries) == 0 {
		return ErrNoSelection
	}
	ts := d.tileSet
	d.undo.CreateAction("Remove Tile Proxies")
	for _, e := range entries {
		to, ok := ts.Proxy(e.Tier, e.From)
		if !ok {
			continue
		}
		d.undo.AddDoMethod(func() { ts.RemoveProxy(e.Tier, e.From) })
		d.undo.AddUndoMethod(func() { d.setProxy(ts, e.Tier, e.From, to) })
	}
	d.commit()
	return nil
}

// ClearInvalid removes proxies that reference missing tiles.
func (d *ProxiesManager) ClearInvalid() error {
	if d.tileSet == nil {
		return ErrNoTileSet
	}
	ts := d.tileSet
	d.undo.CreateAction("Delete All Invalid Tile Proxies")
	d.undo.AddDoMethod(func() {
		if n := ts.CleanupInvalidTileProxies(); n > 0 {
			d.log.WithField("removed", n).Debug("removed invalid tile proxies")
		}
	})
	d.restoreAllOnUndo()
	d.commit()
	return nil
}

func (d *ProxiesManager) ClearAll() error {
	if d.tileSet == nil {
		return ErrNoTileSet
	}
	ts := d.tileSet
	d.undo.CreateAction("Delete All Tile Proxies")
	d.undo.AddDoMethod(ts.ClearTileProxies)
	d.restoreAllOnUndo()
	d.commit()
	return nil
}

// restoreAllOnUndo snapshots every proxy now, before the do step runs.
func (d *ProxiesManager) restoreAllOnUndo() {
	ts := d.tileSet
	for _, e := range ts.AllProxies() {
		d.undo.AddUndoMethod(func() { d.setProxy(ts, e.Tier, e.From, e.To) })
	}
}

func (d *ProxiesManager) commit() {
	d.undo.AddDoMethod(d.Refresh)
	d.undo.AddUndoMethod(d.Refresh)
	d.undo.CommitAction()
	d.committed++
}

func (d *ProxiesManager) setProxy(ts *tileset.TileSet, tier tileset.Tier, from, to tileset.TileRef) {
	if _, _, err := ts.SetProxy(tier, from, to); err != nil {
		d.log.WithError(err).Error("set tile proxy")
	}
}

// Confirm closes the dialog keeping every committed action.
func (d *ProxiesManager) Confirm() {
	d.committed = 0
	d.visible = false
}

// Cancel closes the dialog and undoes the actions committed since it was
// opened, most recent first. It returns how many were undone.
func (d *ProxiesManager) Cancel() int {
	undone := 0
	for i := 0; i < d.committed; i++ {
		if d.undo.Undo() {
			undone++
		}
	}
	if undone != d.committed {
		d.log.WithField("expected", d.committed).WithField("undone", undone).Warn("cancel could not undo every action")
	}
	d.committed = 0
	d.visible = false
	return undone
}

// Text renders every proxy, one per line, grouped by tier.
func (d *ProxiesManager) Text() string {
	var b strings.Builder
	for _, tier := range tileset.Tiers {
		for _, row := range d.rows[tier] {
			fmt.Fprintf(&b, "%s\t%s\n", tier, row.Label())
		}
	}
	return b.String()
}

func (d *ProxiesManager) Update(msg Msg) error {
	switch m := msg.(type) {
	case AddProxyMsg:
		return d.AddProxy()
	case DeleteSelectedMsg:
		return d.DeleteSelected()
	case ClearInvalidMsg:
		return d.ClearInvalid()
	case ClearAllMsg:
		return d.ClearAll()
	case ConfirmMsg:
		d.Confirm()
	case CancelMsg:
		d.Cancel()
	case SetDraftFieldMsg:
		if m.Field == FieldCoords {
			d.Draft.SetCoords(m.Role, m.Coords)
			return nil
		}
		return d.Draft.SetInt(m.Role, m.Field, m.Value)
	case SelectProxyMsg:
		d.Select(m.Tier, m.Index, m.Selected)
	default:
		return fmt.Errorf("editor: proxies dialog %T: %w", msg, ErrUnknownMsg)
	}
	return nil
}
