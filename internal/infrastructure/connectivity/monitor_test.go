package connectivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

func TestMonitorTransitions(t *testing.T) {
	p := &stubPinger{err: errors.New("down")}
	m := NewMonitor(p, time.Hour, time.Second, zap.NewNop())
	events := m.Subscribe()

	if m.Probe(context.Background()) {
		t.Fatal("expected offline")
	}
	select {
	case <-events:
		t.Fatal("no transition expected while staying offline")
	default:
	}

	p.err = nil
	if !m.Probe(context.Background()) || !m.IsOnline() {
		t.Fatal("expected online")
	}
	select {
	case v := <-events:
		if !v {
			t.Error("expected online event")
		}
	default:
		t.Fatal("missing online event")
	}

	m.Set(true)
	select {
	case <-events:
		t.Fatal("Set to same state should not emit")
	default:
	}
}

func TestMonitorKeepsLatestForSlowSubscriber(t *testing.T) {
	m := NewMonitor(nil, time.Hour, time.Second, zap.NewNop())
	events := m.Subscribe()

	m.Set(true)
	m.Set(false)

	if v := <-events; v {
		t.Error("subscriber should see the latest state (offline)")
	}
}
