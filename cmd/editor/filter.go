package main

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tileset-editor/editor"
)

const filterResult = "__match"

// proxyFilter is a tengo boolean expression evaluated once per proxy row,
// e.g. `tier == "Coords" && from_source == 3 && !valid`.
type proxyFilter struct {
	expr     string
	compiled *tengo.Compiled
}

var filterVars = map[string]any{
	"tier":        "",
	"from_source": 0,
	"from_x":      0,
	"from_y":      0,
	"from_alt":    0,
	"to_source":   0,
	"to_x":        0,
	"to_y":        0,
	"to_alt":      0,
	"valid":       false,
}

func compileProxyFilter(expr string) (*proxyFilter, error) {
	script := tengo.NewScript([]byte(filterResult + " := (" + expr + ")"))
	for name, zero := range filterVars {
		if err := script.Add(name, zero); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap("text", "math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expr, err)
	}
	return &proxyFilter{expr: expr, compiled: compiled}, nil
}

func (f *proxyFilter) Match(row editor.ProxyRow) (bool, error) {
	c := f.compiled.Clone()
	e := row.Entry
	values := map[string]any{
		"tier":        e.Tier.String(),
		"from_source": e.From.SourceID,
		"from_x":      e.From.Coords.X,
		"from_y":      e.From.Coords.Y,
		"from_alt":    e.From.Alternative,
		"to_source":   e.To.SourceID,
		"to_x":        e.To.Coords.X,
		"to_y":        e.To.Coords.Y,
		"to_alt":      e.To.Alternative,
		"valid":       row.Valid,
	}
	for name, v := range values {
		if err := c.Set(name, v); err != nil {
			return false, err
		}
	}
	if err := c.Run(); err != nil {
		return false, fmt.Errorf("filter %q: %w", f.expr, err)
	}
	return c.Get(filterResult).Bool(), nil
}
