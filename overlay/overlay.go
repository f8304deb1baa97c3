// Package overlay rasterizes the editor's screen-space state (the handle
// lines and the marquee rectangle) into an RGBA image for debugging.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gekko3d/sceneedit"
	"github.com/gekko3d/sceneedit/geom"
)

var ErrNilImage = errors.New("overlay: nil destination image")

var (
	MarqueeFill   = color.NRGBA{R: 60, G: 120, B: 255, A: 48}
	MarqueeBorder = color.NRGBA{R: 60, G: 120, B: 255, A: 255}
	LabelColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type Overlay struct {
	cam       *geom.Camera
	LineWidth float32
	// Labels draws the mode and tool in the top left corner.
	Labels bool
	face   font.Face
}

func New(cam *geom.Camera) *Overlay {
	return &Overlay{cam: cam, LineWidth: 2, Labels: true, face: basicfont.Face7x13}
}

// Draw renders the session state over dst. Screen coordinates are y-up, so
// rows are flipped against the image height.
func (o *Overlay) Draw(dst *image.RGBA, s *sceneedit.Session) error {
	if dst == nil {
		return ErrNilImage
	}
	b := dst.Bounds()
	if b.Empty() {
		return fmt.Errorf("overlay: empty destination %v", b)
	}

	if !s.Handle.Hidden() {
		for _, l := range s.Handle.Geometry().Lines() {
			o.drawLine(dst, l)
		}
	}
	if r, ok := s.Marquee.Rect(); ok {
		o.drawRect(dst, r)
	}
	if o.Labels {
		label := fmt.Sprintf("%s | %s | %d selected", s.Modes.Mode(), s.Handle.Tool(), s.Selection.Count())
		o.drawLabel(dst, label)
	}
	return nil
}

func (o *Overlay) drawLine(dst *image.RGBA, l sceneedit.HandleLine) {
	a, okA := o.cam.WorldToScreen(l.From)
	c, okC := o.cam.WorldToScreen(l.To)
	if !okA || !okC {
		return
	}
	h := float32(dst.Bounds().Dy())
	a = mgl32.Vec2{a.X(), h - a.Y()}
	c = mgl32.Vec2{c.X(), h - c.Y()}

	dir := c.Sub(a)
	if dir.Len() < 1e-3 {
		return
	}
	n := mgl32.Vec2{-dir.Y(), dir.X()}.Normalize().Mul(o.LineWidth / 2)

	z := newRasterizer(dst)
	z.MoveTo(a.X()+n.X(), a.Y()+n.Y())
	z.LineTo(c.X()+n.X(), c.Y()+n.Y())
	z.LineTo(c.X()-n.X(), c.Y()-n.Y())
	z.LineTo(a.X()-n.X(), a.Y()-n.Y())
	z.ClosePath()
	fill(dst, z, toNRGBA(l.Color))
}

func (o *Overlay) drawRect(dst *image.RGBA, r geom.Rect) {
	h := float32(dst.Bounds().Dy())
	x0, x1 := r.Min.X(), r.Max.X()
	y0, y1 := h-r.Max.Y(), h-r.Min.Y()

	z := newRasterizer(dst)
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
	fill(dst, z, MarqueeFill)

	// border
	w := o.LineWidth
	for _, strip := range [4][4]float32{
		{x0, y0, x1, y0 + w},
		{x0, y1 - w, x1, y1},
		{x0, y0, x0 + w, y1},
		{x1 - w, y0, x1, y1},
	} {
		z := newRasterizer(dst)
		z.MoveTo(strip[0], strip[1])
		z.LineTo(strip[2], strip[1])
		z.LineTo(strip[2], strip[3])
		z.LineTo(strip[0], strip[3])
		z.ClosePath()
		fill(dst, z, MarqueeBorder)
	}
}

func (o *Overlay) drawLabel(dst *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(LabelColor),
		Face: o.face,
		Dot:  fixed.P(dst.Bounds().Min.X+4, dst.Bounds().Min.Y+14),
	}
	d.DrawString(text)
}

func newRasterizer(dst *image.RGBA) *vector.Rasterizer {
	b := dst.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func fill(dst *image.RGBA, z *vector.Rasterizer, c color.Color) {
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func toNRGBA(c [4]float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: uint8(mgl32.Clamp(c[3], 0, 1) * 255),
	}
}
