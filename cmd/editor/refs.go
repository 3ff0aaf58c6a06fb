package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/tileset"
)

// parseTileRef reads "source", "source:x,y" or "source:x,y:alt". Missing
// parts are left unset.
func parseTileRef(s string) (tileset.TileRef, error) {
	ref := tileset.SourceRef(tileset.InvalidSource)
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return ref, fmt.Errorf("tile ref %q: too many parts", s)
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return ref, fmt.Errorf("tile ref %q: source id: %w", s, err)
	}
	ref.SourceID = id

	if len(parts) > 1 {
		xy := strings.Split(parts[1], ",")
		if len(xy) != 2 {
			return ref, fmt.Errorf("tile ref %q: coords must be x,y", s)
		}
		x, errX := strconv.Atoi(strings.TrimSpace(xy[0]))
		y, errY := strconv.Atoi(strings.TrimSpace(xy[1]))
		if errX != nil || errY != nil {
			return ref, fmt.Errorf("tile ref %q: coords must be integers", s)
		}
		ref.Coords = common.V2i(x, y)
	}
	if len(parts) > 2 {
		alt, err := strconv.Atoi(parts[2])
		if err != nil {
			return ref, fmt.Errorf("tile ref %q: alternative: %w", s, err)
		}
		ref.Alternative = alt
	}
	return ref, nil
}

func parseIntOr(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}
