package sceneedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ToolMode int

const (
	ToolTranslate ToolMode = iota
	ToolRotate
	ToolScale
)

func (t ToolMode) String() string {
	switch t {
	case ToolTranslate:
		return "translate"
	case ToolRotate:
		return "rotate"
	case ToolScale:
		return "scale"
	}
	return "unknown"
}

// DragAxisSet holds the axes a drag is constrained to. One bit is a line
// constraint, two bits a plane, three a uniform scale.
type DragAxisSet uint8

const (
	AxisX DragAxisSet = 1 << iota
	AxisY
	AxisZ

	AxisNone DragAxisSet = 0
	AxisXYZ              = AxisX | AxisY | AxisZ
)

func axisBit(i int) DragAxisSet { return DragAxisSet(1) << i }

func (s DragAxisSet) Has(i int) bool { return s&axisBit(i) != 0 }

func (s DragAxisSet) Count() int {
	n := 0
	for i := 0; i < 3; i++ {
		if s.Has(i) {
			n++
		}
	}
	return n
}

// Axes lists the axis indices in the set, ascending.
func (s DragAxisSet) Axes() []int {
	var out []int
	for i := 0; i < 3; i++ {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Missing returns the lowest axis index not in the set, or -1.
func (s DragAxisSet) Missing() int {
	for i := 0; i < 3; i++ {
		if !s.Has(i) {
			return i
		}
	}
	return -1
}

func (s DragAxisSet) String() string {
	if s == AxisNone {
		return "none"
	}
	name := ""
	for _, i := range s.Axes() {
		name += string("XYZ"[i])
	}
	return name
}

var unitAxes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Axis colors used when the handle is drawn.
var axisColors = [3][4]float32{
	{1, 0, 0, 1},
	{0, 1, 0, 1},
	{0, 0, 1, 1},
}

// HandleGeometry is the world-space shape of the handle for its current
// tool. It backs both drawing and hit testing.
type HandleGeometry struct {
	Tool   ToolMode
	Origin mgl32.Vec3

	// Arms are the axis arm end points (Translate, Scale).
	Arms [3]mgl32.Vec3
	// PlaneQuads are indexed by the plane's normal axis and sit on the
	// camera-facing side of the handle (Translate, Scale).
	PlaneQuads [3][4]mgl32.Vec3
	// Rings are closed polylines around each axis (Rotate).
	Rings [3][]mgl32.Vec3
}

// planeAxes returns the two axes spanning the plane whose normal is n.
func planeAxes(n int) (int, int) {
	switch n {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	}
	return 0, 1
}

// ringAxes returns u, v with u x v == axis n.
func ringAxes(n int) (int, int) {
	switch n {
	case 0:
		return 1, 2
	case 1:
		return 2, 0
	}
	return 0, 1
}

type geometryParams struct {
	tool         ToolMode
	origin       mgl32.Vec3
	rotation     mgl32.Quat
	length       float32
	quadFraction float32
	octant       mgl32.Vec3
	segments     int
	scale        mgl32.Vec3
}

func buildHandleGeometry(p geometryParams) HandleGeometry {
	g := HandleGeometry{Tool: p.tool, Origin: p.origin}

	var axes [3]mgl32.Vec3
	for i := range unitAxes {
		axes[i] = p.rotation.Rotate(unitAxes[i])
	}

	switch p.tool {
	case ToolTranslate, ToolScale:
		for i := range axes {
			arm := p.length
			if p.tool == ToolScale {
				arm *= p.scale[i]
			}
			g.Arms[i] = p.origin.Add(axes[i].Mul(arm))
		}
		q := p.length * p.quadFraction
		for n := 0; n < 3; n++ {
			a, b := planeAxes(n)
			da := axes[a].Mul(q * p.octant[a])
			db := axes[b].Mul(q * p.octant[b])
			g.PlaneQuads[n] = [4]mgl32.Vec3{
				p.origin,
				p.origin.Add(da),
				p.origin.Add(da).Add(db),
				p.origin.Add(db),
			}
		}
	case ToolRotate:
		for n := 0; n < 3; n++ {
			u, v := ringAxes(n)
			ring := make([]mgl32.Vec3, p.segments)
			for k := 0; k < p.segments; k++ {
				theta := 2 * math.Pi * float64(k) / float64(p.segments)
				local := axes[u].Mul(float32(math.Cos(theta))).Add(axes[v].Mul(float32(math.Sin(theta))))
				ring[k] = p.origin.Add(local.Mul(p.length))
			}
			g.Rings[n] = ring
		}
	}
	return g
}

// HandleLine is one colored segment of the drawn handle.
type HandleLine struct {
	From, To mgl32.Vec3
	Color    [4]float32
}

// Lines flattens the geometry into colored segments for a debug renderer.
func (g HandleGeometry) Lines() []HandleLine {
	var lines []HandleLine
	switch g.Tool {
	case ToolTranslate, ToolScale:
		for i := range g.Arms {
			lines = append(lines, HandleLine{From: g.Origin, To: g.Arms[i], Color: axisColors[i]})
		}
		for n, quad := range g.PlaneQuads {
			for k := range quad {
				lines = append(lines, HandleLine{From: quad[k], To: quad[(k+1)%4], Color: axisColors[n]})
			}
		}
	case ToolRotate:
		for n, ring := range g.Rings {
			for k := range ring {
				lines = append(lines, HandleLine{From: ring[k], To: ring[(k+1)%len(ring)], Color: axisColors[n]})
			}
		}
	}
	return lines
}
