package health

import (
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

// Mirror is a listener that copies registrations from the registry it is
// subscribed to into a second registry. Because subscribing replays existing
// registrations, a Mirror added after startup still carries every check.
type Mirror struct {
	dst    ports.CheckRegistry
	prefix string
}

// MirrorTo returns a Mirror that registers into dst. Mirrored names are
// prefixed with prefix, which may be empty.
//
//	ready.AddListener(health.MirrorTo(live, "ready."))
func MirrorTo(dst ports.CheckRegistry, prefix string) *Mirror {
	return &Mirror{dst: dst, prefix: prefix}
}

// OnAdded registers c in the destination registry.
func (m *Mirror) OnAdded(name string, c check.Check) {
	m.dst.Register(m.prefix+name, c)
}

// OnRemoved unregisters name from the destination registry.
func (m *Mirror) OnRemoved(name string, _ check.Check) {
	m.dst.Unregister(m.prefix + name)
}
