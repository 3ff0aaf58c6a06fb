package editor

import (
	"fmt"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/tileset"
)

type Role int

const (
	RoleFrom Role = iota
	RoleTo
)

func (r Role) String() string {
	if r == RoleFrom {
		return "from"
	}
	return "to"
}

type DraftField int

const (
	FieldSourceID DraftField = iota
	FieldCoords
	FieldAlternative
)

// FieldSpec describes one editable field of the proxy draft.
type FieldSpec struct {
	Role  Role
	Field DraftField
	Name  string
	Min   int
}

// The lower bound of -1 on "from" fields means "unset": the proxy then
// applies at a coarser tier.
var draftSchema = []FieldSpec{
	{RoleFrom, FieldSourceID, "Source ID", tileset.InvalidSource},
	{RoleFrom, FieldCoords, "Atlas Coords", -1},
	{RoleFrom, FieldAlternative, "Alternative ID", tileset.InvalidAlternative},
	{RoleTo, FieldSourceID, "Source ID", 0},
	{RoleTo, FieldCoords, "Atlas Coords", 0},
	{RoleTo, FieldAlternative, "Alternative ID", 0},
}

func DraftSchema() []FieldSpec {
	out := make([]FieldSpec, len(draftSchema))
	copy(out, draftSchema)
	return out
}

func fieldMin(role Role, field DraftField) int {
	for _, f := range draftSchema {
		if f.Role == role && f.Field == field {
			return f.Min
		}
	}
	return 0
}

// ProxyDraft is the proxy being composed in the dialog. It survives adds.
type ProxyDraft struct {
	From tileset.TileRef
	To   tileset.TileRef
}

func NewProxyDraft() ProxyDraft {
	return ProxyDraft{
		From: tileset.AlternativeRef(tileset.InvalidSource, tileset.InvalidCoords, tileset.InvalidAlternative),
		To:   tileset.AlternativeRef(0, common.Vector2i{}, 0),
	}
}

func (d *ProxyDraft) ref(role Role) *tileset.TileRef {
	if role == RoleFrom {
		return &d.From
	}
	return &d.To
}

// SetInt sets the source id or alternative of one side, clamped to the
// field's lower bound.
func (d *ProxyDraft) SetInt(role Role, field DraftField, v int) error {
	ref := d.ref(role)
	v = common.ClampMin(v, fieldMin(role, field))
	switch field {
	case FieldSourceID:
		ref.SourceID = v
	case FieldAlternative:
		ref.Alternative = v
	default:
		return fmt.Errorf("editor: set %s field %d as int: %w", role, field, ErrUnknownMsg)
	}
	return nil
}

func (d *ProxyDraft) SetCoords(role Role, v common.Vector2i) {
	lo := fieldMin(role, FieldCoords)
	d.ref(role).Coords = common.V2i(common.ClampMin(v.X, lo), common.ClampMin(v.Y, lo))
}

// Tier is the proxy tier an add would create, derived from which "from"
// fields are set.
func (d ProxyDraft) Tier() (tileset.Tier, bool) {
	return d.From.Tier()
}
