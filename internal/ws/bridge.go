package ws

import (
	"log"

	"gas_balance/internal/balance"
)

// Bridge implements balance.Callback and broadcasts run events to the
// WebSocket hub. The run summary goes out as-is; its JSON shape is the
// run:summary payload.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnStage(e balance.StageEvent) {
	msg, err := NewEnvelope(TypeRunStage, StageFromRun(e))
	if err != nil {
		log.Printf("Error marshaling run stage: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnSummary(s balance.Summary) {
	msg, err := NewEnvelope(TypeRunSummary, s)
	if err != nil {
		log.Printf("Error marshaling run summary: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
