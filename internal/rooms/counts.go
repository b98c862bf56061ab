package rooms

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Aggregator recomputes and broadcasts membership counts. Every
// broadcast is a full recomputation from live counts; nothing is cached
// or incrementally maintained, so a missed trigger can never leave a
// counter permanently wrong.
type Aggregator struct {
	reg       *Registry
	gameRooms []string
}

func NewAggregator(reg *Registry, gameRooms []string) *Aggregator {
	return &Aggregator{reg: reg, gameRooms: gameRooms}
}

// Snapshot assembles the COUNT_UPDATE payload for the given route:
// global membership, the route room's membership, each fixed game room,
// and the chat room.
func (a *Aggregator) Snapshot(route string) map[string]any {
	snap := map[string]any{
		"type":        "COUNT_UPDATE",
		"globalCount": a.reg.MemberCount(Global),
		"pageCount":   a.reg.MemberCount(route),
		"chatCount":   a.reg.MemberCount(Chat),
	}
	for _, name := range a.gameRooms {
		snap[name+"Count"] = a.reg.MemberCount(name)
	}
	return snap
}

// Broadcast publishes the identical snapshot payload to the route room
// and to the global room. Empty audiences drop the payload silently.
func (a *Aggregator) Broadcast(route string) {
	payload, err := json.Marshal(a.Snapshot(route))
	if err != nil {
		zap.L().Warn("counts.marshal", zap.Error(err))
		return
	}

	a.reg.Publish(route, payload)
	if route != Global {
		a.reg.Publish(Global, payload)
	}
}
