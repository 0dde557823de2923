package physics

import (
	"log/slog"

	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

// Probe answers whether forward motion is blocked by the proxy geometry.
type Probe struct {
	warned bool
}

// NewProbe returns a probe.
func NewProbe() *Probe {
	return &Probe{}
}

// CanAdvance casts a ray from origin along dir against proxy and reports true
// when nothing is hit. There is no distance threshold: any hit blocks.
// A missing proxy is treated as clear and logged once.
func (p *Probe) CanAdvance(origin, dir mgl32.Vec3, proxy Collider) bool {
	if isMissing(proxy) {
		if !p.warned {
			slog.Warn("no proxy geometry, collision probe treats movement as clear")
			p.warned = true
		}
		return true
	}
	return len(proxy.Intersect(spatial.Ray{Origin: origin, Direction: dir})) == 0
}

func isMissing(c Collider) bool {
	if c == nil {
		return true
	}
	m, ok := c.(*Mesh)
	return ok && m == nil
}
