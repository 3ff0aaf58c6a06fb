package common

import "fmt"

// Vector2i is an integer 2D coordinate, used for atlas cells.
type Vector2i struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

func V2i(x, y int) Vector2i {
	return Vector2i{X: x, Y: y}
}

func (v Vector2i) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

// Valid reports whether both components are non-negative.
func (v Vector2i) Valid() bool {
	return v.X >= 0 && v.Y >= 0
}

// Less orders by row first, then column.
func (v Vector2i) Less(o Vector2i) bool {
	if v.Y != o.Y {
		return v.Y < o.Y
	}
	return v.X < o.X
}

func ClampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
