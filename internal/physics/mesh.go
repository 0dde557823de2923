package physics

import (
	"sort"

	"free-walk/internal/spatial"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// rayEpsilon rejects rays parallel to a triangle's plane.
const rayEpsilon = 1e-7

// Triangle is one face of a collision mesh, in world space.
type Triangle [3]mgl32.Vec3

// AABB is an axis-aligned bounding box used as the broadphase for ray tests.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Mesh is static triangle geometry in world space. It is read-only after NewMesh.
type Mesh struct {
	Name      string
	Triangles []Triangle
	bounds    AABB
}

// NewMesh returns a mesh over tris and precomputes its bounds.
func NewMesh(name string, tris []Triangle) *Mesh {
	m := &Mesh{Name: name, Triangles: tris}
	if len(tris) == 0 {
		return m
	}
	m.bounds = AABB{Min: tris[0][0], Max: tris[0][0]}
	for _, t := range tris {
		for _, v := range t {
			for i := 0; i < 3; i++ {
				m.bounds.Min[i] = min(m.bounds.Min[i], v[i])
				m.bounds.Max[i] = max(m.bounds.Max[i], v[i])
			}
		}
	}
	return m
}

// Bounds returns the mesh's world-space bounding box.
func (m *Mesh) Bounds() AABB {
	return m.bounds
}

// BoxMesh returns a closed box centered at center with full extents size, rotated by rot.
// Zero extents default to 1, matching how primitives are scaled elsewhere.
func BoxMesh(name string, center, size mgl32.Vec3, rot mgl32.Quat) *Mesh {
	for i := 0; i < 3; i++ {
		if size[i] == 0 {
			size[i] = 1
		}
	}
	h := size.Mul(0.5)
	var c [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		local := mgl32.Vec3{h[0], h[1], h[2]}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		c[i] = center.Add(rot.Rotate(local))
	}
	faces := [6][4]int{
		{0, 2, 6, 4}, // +X
		{1, 5, 7, 3}, // -X
		{0, 4, 5, 1}, // +Y
		{2, 3, 7, 6}, // -Y
		{0, 1, 3, 2}, // +Z
		{4, 6, 7, 5}, // -Z
	}
	tris := make([]Triangle, 0, 12)
	for _, f := range faces {
		tris = append(tris,
			Triangle{c[f[0]], c[f[1]], c[f[2]]},
			Triangle{c[f[0]], c[f[2]], c[f[3]]},
		)
	}
	return NewMesh(name, tris)
}

// QuadMesh returns a single rectangle centered at center spanning the two half-axes u and v.
func QuadMesh(name string, center, u, v mgl32.Vec3) *Mesh {
	a := center.Sub(u).Sub(v)
	b := center.Add(u).Sub(v)
	c := center.Add(u).Add(v)
	d := center.Sub(u).Add(v)
	return NewMesh(name, []Triangle{{a, b, c}, {a, c, d}})
}

// Intersect returns every hit of ray against the mesh, nearest first. Faces are
// double-sided: a proxy wall blocks from either side.
func (m *Mesh) Intersect(ray spatial.Ray) []spatial.Hit {
	if len(m.Triangles) == 0 || !m.bounds.hitByRay(ray) {
		return nil
	}
	var hits []spatial.Hit
	for _, t := range m.Triangles {
		if d, ok := intersectTriangle(ray, t); ok {
			hits = append(hits, spatial.Hit{Distance: d, Point: ray.At(d)})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// hitByRay is the slab test. Flat boxes (a single quad) have Min == Max on one axis.
func (b AABB) hitByRay(ray spatial.Ray) bool {
	tmin := float32(0)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		o, d := ray.Origin[i], ray.Direction[i]
		if d == 0 {
			if o < b.Min[i] || o > b.Max[i] {
				return false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}

// intersectTriangle is Möller–Trumbore. Only hits in front of the origin count.
func intersectTriangle(ray spatial.Ray, t Triangle) (float32, bool) {
	e1 := t[1].Sub(t[0])
	e2 := t[2].Sub(t[0])
	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := ray.Origin.Sub(t[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := ray.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := e2.Dot(q) * inv
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
