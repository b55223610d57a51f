package types

// Position is a top-left corner in viewport pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size represents panel dimensions
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a positioned box
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect builds a Rect from a position and size
func NewRect(p Position, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Contains reports whether the point lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Clamp limits v to [lo, hi]. When the range is empty lo wins, so a panel
// larger than the viewport sticks to the top-left bound.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
