package physics

import (
	"log/slog"

	"free-walk/internal/spatial"
)

// Collider is anything a ray can be cast against.
type Collider interface {
	Intersect(ray spatial.Ray) []spatial.Hit
}

// World holds the proxy geometry for the loaded environment. The proxy is
// invisible and used only for collision probing.
type World struct {
	proxy *Mesh
}

// NewWorld returns a world with no proxy registered.
func NewWorld() *World {
	return &World{}
}

// SetProxy registers m as the proxy geometry. A later call replaces an earlier one.
func (w *World) SetProxy(m *Mesh) {
	if w.proxy != nil && m != w.proxy {
		slog.Warn("replacing proxy geometry", "previous", w.proxy.Name, "proxy", m.Name)
	}
	w.proxy = m
}

// HasProxy reports whether a proxy has ever been registered.
func (w *World) HasProxy() bool {
	return w.proxy != nil
}

// Proxy returns the registered proxy, or a nil Collider when none exists.
// The nil interface (not a typed nil) lets callers gate on "has proxy".
func (w *World) Proxy() Collider {
	if w.proxy == nil {
		return nil
	}
	return w.proxy
}
