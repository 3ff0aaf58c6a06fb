package main

import (
	"testing"

	"github.com/milk9111/tileset-editor/common"
	"github.com/milk9111/tileset-editor/editor"
	"github.com/milk9111/tileset-editor/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyFilter(t *testing.T) {
	coords := editor.ProxyRow{
		Entry: tileset.ProxyEntry{
			Tier: tileset.TierCoords,
			From: tileset.CoordsRef(3, common.V2i(1, 2)),
			To:   tileset.CoordsRef(7, common.V2i(0, 0)),
		},
		Valid: false,
	}
	source := editor.ProxyRow{
		Entry: tileset.ProxyEntry{Tier: tileset.TierSource, From: tileset.SourceRef(3), To: tileset.SourceRef(7)},
		Valid: true,
	}

	cases := []struct {
		expr       string
		wantCoords bool
		wantSource bool
	}{
		{`true`, true, true},
		{`tier == "Coords"`, true, false},
		{`from_source == 3 && to_source == 7`, true, true},
		{`!valid`, true, false},
		{`from_x == 1 && from_y == 2`, true, false},
		{`from_alt < 0`, true, true},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			f, err := compileProxyFilter(c.expr)
			require.NoError(t, err)

			got, err := f.Match(coords)
			require.NoError(t, err)
			assert.Equal(t, c.wantCoords, got)

			got, err = f.Match(source)
			require.NoError(t, err)
			assert.Equal(t, c.wantSource, got)
		})
	}
}

func TestProxyFilterRejectsBadExpression(t *testing.T) {
	_, err := compileProxyFilter(`tier ==`)
	assert.Error(t, err)
	_, err = compileProxyFilter(`unknown_name > 1`)
	assert.Error(t, err)
}

func TestParseTileRef(t *testing.T) {
	cases := []struct {
		in   string
		want tileset.TileRef
		tier tileset.Tier
	}{
		{"3", tileset.SourceRef(3), tileset.TierSource},
		{"3:1,2", tileset.CoordsRef(3, common.V2i(1, 2)), tileset.TierCoords},
		{"3: 1, 2 :4", tileset.AlternativeRef(3, common.V2i(1, 2), 4), tileset.TierAlternative},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := parseTileRef(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
			tier, ok := got.Tier()
			require.True(t, ok)
			assert.Equal(t, c.tier, tier)
		})
	}

	for _, bad := range []string{"", "x", "3:1", "3:1,2:z", "3:1,2:3:4"} {
		_, err := parseTileRef(bad)
		assert.Error(t, err, bad)
	}
}
