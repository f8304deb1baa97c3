package mapscene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/sceneedit"
)

type recordingListener struct {
	imported, pasted, deleted [][]sceneedit.ObjectId
}

func (r *recordingListener) OnObjectsImported(ids []sceneedit.ObjectId) {
	r.imported = append(r.imported, ids)
}
func (r *recordingListener) OnObjectsPasted(ids []sceneedit.ObjectId) { r.pasted = append(r.pasted, ids) }
func (r *recordingListener) OnObjectsDeleted(ids []sceneedit.ObjectId) {
	r.deleted = append(r.deleted, ids)
}

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 20, 30}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 0, 1})

	// Scale first, then rotate, then translate.
	m := tr.ObjectToWorld()
	x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	c := float32(math.Cos(math.Pi / 6))
	assert.True(t, x.ApproxEqualThreshold(mgl32.Vec3{10 + 2*c, 21, 30}, 1e-4), "got %v", x)
	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.Equal(t, tr.Position, origin)
}

func TestWorldVertices(t *testing.T) {
	s := NewScene()
	obj := s.New("crate", KindMarker, Cube(2), mgl32.Vec3{5, 0, 0})
	obj.SetScale(mgl32.Vec3{2, 1, 1})

	verts := obj.WorldVertices()
	require.Len(t, verts, 8)
	assert.InDelta(t, 3, verts[0].X(), 1e-5)
	assert.InDelta(t, 7, verts[1].X(), 1e-5)
	assert.InDelta(t, -1, verts[0].Y(), 1e-5)
}

func TestObjectLookupFollowsMapMembership(t *testing.T) {
	s := NewScene()
	obj := s.New("spawn", KindSpawn, nil, mgl32.Vec3{})

	_, ok := s.Object(obj.Id)
	assert.False(t, ok, "detached objects are not visible to the editor")

	require.NoError(t, s.Import(obj.Id))
	got, ok := s.Object(obj.Id)
	require.True(t, ok)
	assert.Equal(t, obj, got)

	s.RemoveFromMap([]sceneedit.ObjectId{obj.Id})
	_, ok = s.Object(obj.Id)
	assert.False(t, ok)
	assert.Empty(t, s.Objects())

	s.RestoreToMap([]sceneedit.ObjectId{obj.Id})
	assert.Len(t, s.Objects(), 1)
}

func TestImportNotifiesSelectableOnly(t *testing.T) {
	s := NewScene()
	l := &recordingListener{}
	s.SetListener(l)

	a := s.New("a", KindMarker, Cube(1), mgl32.Vec3{})
	b := s.New("ground", KindTerrain, Cube(10), mgl32.Vec3{})
	b.Locked = true

	require.NoError(t, s.Import(a.Id, b.Id))
	require.Len(t, l.imported, 1)
	assert.Equal(t, []sceneedit.ObjectId{a.Id}, l.imported[0])
	assert.True(t, b.InMap())
}

func TestImportUnknownObject(t *testing.T) {
	s := NewScene()
	err := s.Import(42)
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestDuplicate(t *testing.T) {
	s := NewScene()
	src := s.New("region", KindRegion, Cube(1), mgl32.Vec3{1, 2, 3})
	src.SetScale(mgl32.Vec3{2, 2, 2})
	require.NoError(t, s.Import(src.Id))

	ids, err := s.Duplicate([]sceneedit.ObjectId{src.Id}, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	dup, ok := s.Get(ids[0])
	require.True(t, ok)
	assert.NotEqual(t, src.Id, dup.Id)
	assert.False(t, dup.InMap())
	assert.Equal(t, mgl32.Vec3{2, 2, 3}, dup.Position())
	assert.Equal(t, src.Scale(), dup.Scale())

	dup.Mesh[0] = mgl32.Vec3{9, 9, 9}
	assert.NotEqual(t, dup.Mesh[0], src.Mesh[0], "mesh is copied")

	_, err = s.Duplicate([]sceneedit.ObjectId{99}, mgl32.Vec3{})
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestRemoveClearsOutline(t *testing.T) {
	s := NewScene()
	obj := s.New("a", KindMarker, Cube(1), mgl32.Vec3{})
	require.NoError(t, s.Import(obj.Id))
	obj.SetOutline(true)

	s.RemoveFromMap([]sceneedit.ObjectId{obj.Id})
	assert.False(t, obj.Outlined())
}
