package rooms

import (
	"presencehub/internal/hub"
)

// Reserved room names. Every presence connection is a member of Global;
// chat participants are members of Chat. Route rooms are named by the
// route string itself and exist only while occupied.
const (
	Global = "global-room"
	Chat   = "chat-room"

	// DefaultRoute is the route room a connection lands in when the
	// client does not name one.
	DefaultRoute = "global"
)

// Broker is the pub/sub capability the registry drives. *hub.Hub is the
// production implementation; tests substitute a recording double.
type Broker interface {
	Join(name string, c hub.Conn)
	Leave(name string, c hub.Conn)
	Count(name string) int
	Publish(name string, payload []byte)
}

// Registry is the semantic layer over the broker: room names, membership
// and counts. It never triggers broadcasts itself.
type Registry struct {
	broker Broker
}

func NewRegistry(b Broker) *Registry {
	return &Registry{broker: b}
}

// Join subscribes c to the named room. Idempotent.
func (r *Registry) Join(c hub.Conn, name string) {
	r.broker.Join(name, c)
}

// Leave unsubscribes c from the named room. No-op if c is not a member.
func (r *Registry) Leave(c hub.Conn, name string) {
	r.broker.Leave(name, c)
}

// MemberCount reports live membership. A room that never existed and a
// room whose last member left both report zero.
func (r *Registry) MemberCount(name string) int {
	return r.broker.Count(name)
}

// Publish fans payload out to the named room's members. Publishing to an
// empty room is a defined no-op.
func (r *Registry) Publish(name string, payload []byte) {
	r.broker.Publish(name, payload)
}
