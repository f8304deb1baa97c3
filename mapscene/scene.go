// Package mapscene is an in-memory map: an arena of placed objects that the
// editor core can look up, move, and take in and out of the map.
package mapscene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sceneedit"
)

var ErrUnknownObject = errors.New("unknown map object")

// Kind tags what a map object represents in the level.
type Kind string

const (
	KindTerrain Kind = "terrain"
	KindSpawn   Kind = "spawn"
	KindRegion  Kind = "region"
	KindMarker  Kind = "marker"
)

type Object struct {
	Id        sceneedit.ObjectId
	Name      string
	Kind      Kind
	Transform *Transform
	// Mesh holds local space vertices. An object without a mesh has no
	// visible geometry.
	Mesh []mgl32.Vec3
	// Locked objects stay in the map but are never offered for selection.
	Locked bool

	outlined bool
	inMap    bool
}

func (o *Object) Position() mgl32.Vec3     { return o.Transform.Position }
func (o *Object) SetPosition(p mgl32.Vec3) { o.Transform.Position = p }
func (o *Object) Rotation() mgl32.Quat     { return o.Transform.Rotation }
func (o *Object) SetRotation(q mgl32.Quat) { o.Transform.Rotation = q }
func (o *Object) Scale() mgl32.Vec3        { return o.Transform.Scale }
func (o *Object) SetScale(s mgl32.Vec3)    { o.Transform.Scale = s }

func (o *Object) WorldVertices() []mgl32.Vec3 {
	o2w := o.Transform.ObjectToWorld()
	out := make([]mgl32.Vec3, len(o.Mesh))
	for i, v := range o.Mesh {
		out[i] = o2w.Mul4x1(v.Vec4(1.0)).Vec3()
	}
	return out
}

func (o *Object) SetOutline(enabled bool) { o.outlined = enabled }
func (o *Object) Outlined() bool          { return o.outlined }
func (o *Object) InMap() bool             { return o.inMap }

// Scene owns every object ever created. Ids index the arena and are never
// reused, so deleted objects can be restored under the same id.
type Scene struct {
	objects  []*Object
	listener sceneedit.MapListener
}

func NewScene() *Scene {
	return &Scene{}
}

// SetListener routes import notifications, usually to the editor session.
func (s *Scene) SetListener(l sceneedit.MapListener) {
	s.listener = l
}

// New creates a detached object. It joins the map on Import or paste.
func (s *Scene) New(name string, kind Kind, mesh []mgl32.Vec3, position mgl32.Vec3) *Object {
	obj := &Object{
		Id:        sceneedit.ObjectId(len(s.objects) + 1),
		Name:      name,
		Kind:      kind,
		Transform: NewTransform(),
		Mesh:      mesh,
	}
	obj.Transform.Position = position
	s.objects = append(s.objects, obj)
	return obj
}

func (s *Scene) get(id sceneedit.ObjectId) (*Object, bool) {
	if id == 0 || int(id) > len(s.objects) {
		return nil, false
	}
	return s.objects[id-1], true
}

// Get returns an object whether or not it is in the map.
func (s *Scene) Get(id sceneedit.ObjectId) (*Object, bool) {
	return s.get(id)
}

// Object resolves ids of objects currently in the map.
func (s *Scene) Object(id sceneedit.ObjectId) (sceneedit.Transformable, bool) {
	obj, ok := s.get(id)
	if !ok || !obj.inMap {
		return nil, false
	}
	return obj, true
}

// Objects returns the objects in the map in id order.
func (s *Scene) Objects() []*Object {
	var out []*Object
	for _, obj := range s.objects {
		if obj.inMap {
			out = append(out, obj)
		}
	}
	return out
}

// Import puts detached objects into the map and reports the selectable ones
// to the listener.
func (s *Scene) Import(ids ...sceneedit.ObjectId) error {
	for _, id := range ids {
		if _, ok := s.get(id); !ok {
			return fmt.Errorf("import object %d: %w", id, ErrUnknownObject)
		}
	}
	s.RestoreToMap(ids)
	if s.listener != nil {
		s.listener.OnObjectsImported(s.selectable(ids))
	}
	return nil
}

// Duplicate clones ids into new detached objects moved by offset. The copies
// enter the map once the editor records the paste.
func (s *Scene) Duplicate(ids []sceneedit.ObjectId, offset mgl32.Vec3) ([]sceneedit.ObjectId, error) {
	var out []sceneedit.ObjectId
	for _, id := range ids {
		src, ok := s.get(id)
		if !ok {
			return nil, fmt.Errorf("duplicate object %d: %w", id, ErrUnknownObject)
		}
		dup := s.New(src.Name, src.Kind, append([]mgl32.Vec3(nil), src.Mesh...), src.Transform.Position.Add(offset))
		dup.Transform.Rotation = src.Transform.Rotation
		dup.Transform.Scale = src.Transform.Scale
		dup.Locked = src.Locked
		out = append(out, dup.Id)
	}
	return out, nil
}

func (s *Scene) RemoveFromMap(ids []sceneedit.ObjectId) {
	for _, id := range ids {
		if obj, ok := s.get(id); ok {
			obj.inMap = false
			obj.outlined = false
		}
	}
}

func (s *Scene) RestoreToMap(ids []sceneedit.ObjectId) {
	for _, id := range ids {
		if obj, ok := s.get(id); ok {
			obj.inMap = true
		}
	}
}

func (o *Object) IsLocked() bool { return o.Locked }

func (s *Scene) selectable(ids []sceneedit.ObjectId) []sceneedit.ObjectId {
	out := make([]sceneedit.ObjectId, 0, len(ids))
	for _, id := range ids {
		if obj, ok := s.get(id); ok && !obj.Locked {
			out = append(out, id)
		}
	}
	return out
}

var (
	_ sceneedit.MapHost    = (*Scene)(nil)
	_ sceneedit.Renderable = (*Object)(nil)
)
