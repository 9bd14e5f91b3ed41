package font

// Point is a 2D point. Its unit depends on context: ems for outlines and
// shaped glyphs, logical pixels after layout.
type Point struct {
	X, Y float32
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Scale returns p with both coordinates multiplied by s.
func (p Point) Scale(s float32) Point { return Point{p.X * s, p.Y * s} }

// Rect is an axis-aligned rectangle with Min inclusive and Max exclusive.
// Outline bounds use the y-up convention of font design space.
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Scale returns r with every coordinate multiplied by s.
func (r Rect) Scale(s float32) Rect { return Rect{r.Min.Scale(s), r.Max.Scale(s)} }
