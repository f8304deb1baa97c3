package sceneedit

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectId is a non-owning handle to a map object. The scene owns the
// objects; the editor only keeps ids.
type ObjectId uint32

// Transformable is the part of a map object the editor manipulates.
type Transformable interface {
	Position() mgl32.Vec3
	SetPosition(mgl32.Vec3)
	Rotation() mgl32.Quat
	SetRotation(mgl32.Quat)
	Scale() mgl32.Vec3
	SetScale(mgl32.Vec3)
}

// Renderable is implemented by objects with visible geometry. Objects
// without it can still be selected but never get a screen box or outline.
type Renderable interface {
	// WorldVertices returns the object's mesh vertices in world space.
	WorldVertices() []mgl32.Vec3
	SetOutline(enabled bool)
}

// Lockable is implemented by objects that can be pinned in the map. Locked
// objects never become selectable.
type Lockable interface {
	IsLocked() bool
}

// Scene resolves handles to live objects.
type Scene interface {
	Object(id ObjectId) (Transformable, bool)
}

// MapHost is implemented by scenes that can take objects out of the map
// and put them back, which is what delete and paste need to be undoable.
type MapHost interface {
	Scene
	RemoveFromMap(ids []ObjectId)
	RestoreToMap(ids []ObjectId)
}

// TransformState is a value snapshot of one object's transform.
type TransformState struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func captureTransform(obj Transformable) TransformState {
	return TransformState{
		Position: obj.Position(),
		Rotation: obj.Rotation(),
		Scale:    obj.Scale(),
	}
}

func (ts TransformState) applyTo(obj Transformable) {
	obj.SetPosition(ts.Position)
	obj.SetRotation(ts.Rotation)
	obj.SetScale(ts.Scale)
}

// MapListener receives map-level notifications. The editor uses them only
// to keep selection membership and cached screen boxes current.
type MapListener interface {
	OnObjectsImported(ids []ObjectId)
	OnObjectsPasted(ids []ObjectId)
	OnObjectsDeleted(ids []ObjectId)
}
