package mapscene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Cube returns the 8 corners of an axis aligned cube of edge size centered
// on the origin.
func Cube(size float32) []mgl32.Vec3 {
	h := size / 2
	return []mgl32.Vec3{
		{-h, -h, -h},
		{h, -h, -h},
		{-h, h, -h},
		{h, h, -h},
		{-h, -h, h},
		{h, -h, h},
		{-h, h, h},
		{h, h, h},
	}
}
