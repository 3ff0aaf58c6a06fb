package tileset

//go:generate go tool stringer -type=Tier -trimprefix=Tier

// Tier is the specificity of a tile proxy.
type Tier int

const (
	TierSource Tier = iota
	TierCoords
	TierAlternative
)

var Tiers = []Tier{TierSource, TierCoords, TierAlternative}

func (t Tier) Valid() bool {
	return t >= TierSource && t <= TierAlternative
}
