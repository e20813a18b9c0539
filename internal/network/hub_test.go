package network

import (
	"testing"

	"github.com/vdurham2244/lavobot-game/pkg/api"
)

func TestBroadcaster_RegisterSendUnregister(t *testing.T) {
	b := NewBroadcaster()

	ch := b.Register("s1")
	if !b.HasSubscriber("s1") {
		t.Fatal("subscriber not registered")
	}

	b.SendTo("s1", api.ServerResponse{Type: "UPDATE", Tick: 7})
	msg := <-ch
	if msg.Tick != 7 {
		t.Errorf("tick = %d, want 7", msg.Tick)
	}

	b.Unregister("s1")
	if b.HasSubscriber("s1") {
		t.Error("subscriber still present after unregister")
	}
	if _, open := <-ch; open {
		t.Error("channel must be closed on unregister")
	}
}

func TestBroadcaster_SendToMissingSession(t *testing.T) {
	b := NewBroadcaster()
	// Не должно паниковать и блокироваться
	b.SendTo("ghost", api.ServerResponse{Type: "UPDATE"})
}

func TestBroadcaster_FullChannelDropsFrame(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("s1")

	// Переполняем буфер: лишние кадры молча отбрасываются
	for i := 0; i < 150; i++ {
		b.SendTo("s1", api.ServerResponse{Type: "UPDATE", Tick: i})
	}

	if got := len(ch); got != 100 {
		t.Errorf("buffered frames = %d, want 100", got)
	}
}
