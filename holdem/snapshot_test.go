package holdem

import "testing"

func TestSnapshot_IsDeepCopy(t *testing.T) {
	g, creator, err := NewGameWithCreator(DefaultConfig(), "A")
	if err != nil {
		t.Fatalf("NewGameWithCreator err: %v", err)
	}
	if _, err := g.AddPlayer("B"); err != nil {
		t.Fatal(err)
	}

	snap := g.Snapshot()
	if snap.Phase != PhaseWaiting {
		t.Fatalf("expected waiting, got %v", snap.Phase)
	}
	if len(snap.Players) != 2 || snap.MaxPlayers != MaxPlayers {
		t.Fatalf("unexpected snapshot shape: players=%d max=%d", len(snap.Players), snap.MaxPlayers)
	}
	if snap.PlayerIndex(creator) != 0 {
		t.Fatalf("expected creator at index 0, got %d", snap.PlayerIndex(creator))
	}

	snap.Players[0].Name = "mutated"
	snap.Players = snap.Players[:1]
	if g.Player(creator).Name() != "A" || g.PlayerCount() != 2 {
		t.Fatalf("mutating a snapshot must not touch the game")
	}

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if snap.Phase != PhaseWaiting {
		t.Fatalf("old snapshot must keep its phase, got %v", snap.Phase)
	}
	if g.Snapshot().Phase != PhasePreFlop {
		t.Fatalf("expected fresh snapshot to see preflop")
	}
}

func TestSnapshot_Full(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 2
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if g.Snapshot().Full() {
		t.Fatalf("empty game reported full")
	}
	g.AddPlayer("A")
	g.AddPlayer("B")
	if !g.Snapshot().Full() || !g.Full() {
		t.Fatalf("expected two-seat game with two players to be full")
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePreFlop.String() != "preflop" || PhaseWaiting.String() != "waiting" {
		t.Fatalf("unexpected phase names %q %q", PhasePreFlop, PhaseWaiting)
	}
	if Phase(42).String() != "unknown" {
		t.Fatalf("expected unknown for out-of-range phase")
	}
}
