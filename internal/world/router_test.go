package world

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/silverkeep/realmd/internal/wire"
)

func newTestRouter() *Router {
	return NewRouter(zap.NewNop(), NewIDAllocator(1), make(map[uint16]*Map))
}

func TestRegisterSenderAssignsID(t *testing.T) {
	r := newTestRouter()
	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	defer cancel()

	p := NewPlayer(0, Location{X: 100, Y: 100, Map: 4}, "Tester", 16)
	resp := r.Request(RegisterSender{Player: p})
	assigned, ok := resp.(AssignedID)
	if !ok {
		t.Fatalf("expected AssignedID, got %#v", resp)
	}
	if assigned.ID == 0 {
		t.Fatalf("expected nonzero assigned id")
	}
}

func TestMoveWithinRangeSendsMoveObject(t *testing.T) {
	r := newTestRouter()
	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	defer cancel()

	a := NewPlayer(0, Location{X: 0, Y: 0, Map: 4}, "A", 16)
	b := NewPlayer(0, Location{X: 5, Y: 0, Map: 4}, "B", 16)

	r.Request(RegisterSender{Player: a})
	r.Request(RegisterSender{Player: b})

	// Drain any initial-view packets queued during registration.
	drain(a.SendChannel())
	drain(b.SendChannel())

	r.Send(ClientPacketMsg{ID: a.ID(), Packet: wire.MoveFrom{X: 6, Y: 0, Heading: 2}})

	select {
	case pkt := <-b.SendChannel():
		if _, ok := pkt.(wire.MoveObject); !ok {
			t.Fatalf("expected MoveObject, got %#v", pkt)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for move notification")
	}
}

func drain(ch chan wire.ServerPacket) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
