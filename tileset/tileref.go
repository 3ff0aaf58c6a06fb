package tileset

import (
	"fmt"

	"github.com/milk9111/tileset-editor/common"
)

const (
	InvalidSource      = -1
	InvalidAlternative = -1
)

var InvalidCoords = common.Vector2i{X: -1, Y: -1}

// TileRef addresses a tile: a source, an atlas cell within it and an
// alternative of that cell. Which fields are meaningful depends on the Tier
// the reference is used with.
type TileRef struct {
	SourceID    int             `yaml:"source"`
	Coords      common.Vector2i `yaml:"coords"`
	Alternative int             `yaml:"alternative"`
}

func SourceRef(sourceID int) TileRef {
	return TileRef{SourceID: sourceID, Coords: InvalidCoords, Alternative: InvalidAlternative}
}

func CoordsRef(sourceID int, coords common.Vector2i) TileRef {
	return TileRef{SourceID: sourceID, Coords: coords, Alternative: InvalidAlternative}
}

func AlternativeRef(sourceID int, coords common.Vector2i, alternative int) TileRef {
	return TileRef{SourceID: sourceID, Coords: coords, Alternative: alternative}
}

// Key strips the fields that are not part of a key at the given tier.
func (r TileRef) Key(tier Tier) TileRef {
	switch tier {
	case TierSource:
		return SourceRef(r.SourceID)
	case TierCoords:
		return CoordsRef(r.SourceID, r.Coords)
	default:
		return r
	}
}

// Tier returns the most specific tier the reference carries enough fields for.
func (r TileRef) Tier() (Tier, bool) {
	switch {
	case r.SourceID < 0:
		return TierSource, false
	case !r.Coords.Valid():
		return TierSource, true
	case r.Alternative < 0:
		return TierCoords, true
	default:
		return TierAlternative, true
	}
}

func (r TileRef) Format(tier Tier) string {
	switch tier {
	case TierSource:
		return fmt.Sprintf("%d", r.SourceID)
	case TierCoords:
		return fmt.Sprintf("%d %s", r.SourceID, r.Coords)
	default:
		return fmt.Sprintf("%d %s %d", r.SourceID, r.Coords, r.Alternative)
	}
}

// ProxyEntry is one row of a proxy tier.
type ProxyEntry struct {
	Tier Tier
	From TileRef
	To   TileRef
}

func (e ProxyEntry) String() string {
	return fmt.Sprintf("%s -> %s", e.From.Format(e.Tier), e.To.Format(e.Tier))
}

func (r TileRef) less(o TileRef) bool {
	if r.SourceID != o.SourceID {
		return r.SourceID < o.SourceID
	}
	if r.Coords != o.Coords {
		return r.Coords.Less(o.Coords)
	}
	return r.Alternative < o.Alternative
}
