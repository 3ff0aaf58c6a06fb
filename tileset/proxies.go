package tileset

import (
	"fmt"
	"sort"

	"github.com/milk9111/tileset-editor/common"
)

func (ts *TileSet) tier(tier Tier) (map[TileRef]TileRef, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("tileset: tier %d: %w", int(tier), ErrInvalidTier)
	}
	return ts.proxies[tier], nil
}

func validAt(ref TileRef, tier Tier) bool {
	got, ok := ref.Tier()
	return ok && got >= tier
}

// SetProxy inserts or overwrites the proxy for from at the given tier. The
// target replaced by this call, if any, is returned so callers can build an
// inverse operation.
func (ts *TileSet) SetProxy(tier Tier, from, to TileRef) (prev TileRef, existed bool, err error) {
	m, err := ts.tier(tier)
	if err != nil {
		return TileRef{}, false, err
	}
	if !validAt(from, tier) || !validAt(to, tier) {
		return TileRef{}, false, fmt.Errorf("tileset: set %s proxy %s -> %s: %w", tier, from.Format(tier), to.Format(tier), ErrInvalidID)
	}
	key, target := from.Key(tier), to.Key(tier)
	if key == target {
		return TileRef{}, false, fmt.Errorf("tileset: set %s proxy %s: %w", tier, key.Format(tier), ErrSelfProxy)
	}
	prev, existed = m[key]
	m[key] = target
	return prev, existed, nil
}

func (ts *TileSet) Proxy(tier Tier, from TileRef) (TileRef, bool) {
	m, err := ts.tier(tier)
	if err != nil {
		return TileRef{}, false
	}
	to, ok := m[from.Key(tier)]
	return to, ok
}

func (ts *TileSet) HasProxy(tier Tier, from TileRef) bool {
	_, ok := ts.Proxy(tier, from)
	return ok
}

// RemoveProxy deletes the proxy for from. Removing an absent proxy is a no-op.
func (ts *TileSet) RemoveProxy(tier Tier, from TileRef) {
	if m, err := ts.tier(tier); err == nil {
		delete(m, from.Key(tier))
	}
}

// Proxies lists the entries of one tier ordered by key.
func (ts *TileSet) Proxies(tier Tier) []ProxyEntry {
	m, err := ts.tier(tier)
	if err != nil {
		return nil
	}
	out := make([]ProxyEntry, 0, len(m))
	for from, to := range m {
		out = append(out, ProxyEntry{Tier: tier, From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From.less(out[j].From) })
	return out
}

func (ts *TileSet) AllProxies() []ProxyEntry {
	var out []ProxyEntry
	for _, tier := range Tiers {
		out = append(out, ts.Proxies(tier)...)
	}
	return out
}

func (ts *TileSet) ProxyCount() int {
	n := 0
	for _, m := range ts.proxies {
		n += len(m)
	}
	return n
}

// Resolve finds the best proxy for ref. tier tells how much of ref was
// supplied: TierSource means only the source id, TierCoords adds the atlas
// coords, TierAlternative adds the alternative. Lookup goes from the most
// specific supplied tier down to the source tier; fields below the matched
// tier are kept from ref. Proxies are not chained.
func (ts *TileSet) Resolve(ref TileRef, tier Tier) (TileRef, bool) {
	if !tier.Valid() {
		return ref, false
	}
	if tier >= TierAlternative {
		if to, ok := ts.proxies[TierAlternative][ref.Key(TierAlternative)]; ok {
			return to, true
		}
	}
	if tier >= TierCoords {
		if to, ok := ts.proxies[TierCoords][ref.Key(TierCoords)]; ok {
			return TileRef{SourceID: to.SourceID, Coords: to.Coords, Alternative: ref.Alternative}, true
		}
	}
	if to, ok := ts.proxies[TierSource][ref.Key(TierSource)]; ok {
		return TileRef{SourceID: to.SourceID, Coords: ref.Coords, Alternative: ref.Alternative}, true
	}
	return ref, false
}

// MapTileProxy resolves a fully specified tile reference, returning it
// unchanged when no proxy applies.
func (ts *TileSet) MapTileProxy(sourceID int, coords common.Vector2i, alternative int) TileRef {
	ref, _ := ts.Resolve(AlternativeRef(sourceID, coords, alternative), TierAlternative)
	return ref
}

// IsProxyValid reports whether both sides of the entry exist in the tile set.
func (ts *TileSet) IsProxyValid(e ProxyEntry) bool {
	return ts.HasTileRef(e.From, e.Tier) && ts.HasTileRef(e.To, e.Tier)
}

// CleanupInvalidTileProxies removes every proxy that references a source,
// tile or alternative missing from the tile set, on either side. It returns
// the number of entries removed.
func (ts *TileSet) CleanupInvalidTileProxies() int {
	removed := 0
	for _, e := range ts.AllProxies() {
		if !ts.IsProxyValid(e) {
			delete(ts.proxies[e.Tier], e.From)
			removed++
		}
	}
	return removed
}

func (ts *TileSet) ClearTileProxies() {
	for i := range ts.proxies {
		ts.proxies[i] = make(map[TileRef]TileRef)
	}
}
