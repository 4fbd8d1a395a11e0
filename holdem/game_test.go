package holdem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(DefaultConfig())
	if err != nil {
		t.Fatalf("NewGame err: %v", err)
	}
	return g
}

func TestNewGame_Defaults(t *testing.T) {
	g, creator, err := NewGameWithCreator(DefaultConfig(), "test player")
	if err != nil {
		t.Fatalf("NewGameWithCreator err: %v", err)
	}
	if g.PlayerCount() != 1 {
		t.Fatalf("expected a single founding player, got %d", g.PlayerCount())
	}
	if p := g.Player(creator); p == nil || p.Name() != "test player" {
		t.Fatalf("expected founding player to be present with its name, got %+v", p)
	}
	if g.Phase() != PhaseWaiting {
		t.Fatalf("expected waiting phase, got %v", g.Phase())
	}
	if g.ButtonIndex() != 0 || g.TurnIndex() != 0 {
		t.Fatalf("expected creator to hold button and turn, got button=%d turn=%d", g.ButtonIndex(), g.TurnIndex())
	}
	if g.Pot() != 0 {
		t.Fatalf("expected empty pot, got %d", g.Pot())
	}
	if sb, bb := g.Blinds(); sb != DefaultSmallBlind || bb != DefaultBigBlind {
		t.Fatalf("expected default blinds, got %d/%d", sb, bb)
	}
}

func TestNewGame_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = MaxPlayers + 1
	if _, err := NewGame(cfg); err == nil {
		t.Fatalf("expected error for MaxPlayers above %d", MaxPlayers)
	}
	cfg = DefaultConfig()
	cfg.SmallBlind, cfg.BigBlind = 5, 2
	if _, err := NewGame(cfg); err == nil {
		t.Fatalf("expected error for inverted blinds")
	}
}

func TestAddPlayer_UntilFull(t *testing.T) {
	g := newTestGame(t)
	ids := make(map[uuid.UUID]bool, MaxPlayers)
	for i := 0; i < MaxPlayers; i++ {
		id, err := g.AddPlayer(fmt.Sprintf("Player %d", i+1))
		if err != nil {
			t.Fatalf("AddPlayer %d err: %v", i+1, err)
		}
		if ids[id] {
			t.Fatalf("duplicate identity %s", id)
		}
		ids[id] = true
		if g.PlayerCount() != i+1 {
			t.Fatalf("expected %d players, got %d", i+1, g.PlayerCount())
		}
	}

	_, err := g.AddPlayer("ninth")
	var joinErr *JoinGameError
	if !errors.As(err, &joinErr) || joinErr.Kind != GameFull {
		t.Fatalf("expected JoinGameError{GameFull}, got %v", err)
	}
	if !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected errors.Is(err, ErrGameFull)")
	}
	if g.PlayerCount() != MaxPlayers {
		t.Fatalf("expected player count unchanged at %d, got %d", MaxPlayers, g.PlayerCount())
	}
}

func TestAddPlayer_PreservesJoinOrder(t *testing.T) {
	g := newTestGame(t)
	names := []string{"A", "B", "C"}
	for _, n := range names {
		if _, err := g.AddPlayer(n); err != nil {
			t.Fatal(err)
		}
	}
	for i, p := range g.Players() {
		if p.Name() != names[i] {
			t.Fatalf("seat %d: expected %s, got %s", i, names[i], p.Name())
		}
	}
}

func TestAddPlayer_NeverReusesIdentity(t *testing.T) {
	g := newTestGame(t)
	fixed := uuid.MustParse("6f1c1b8e-4a57-4d4e-8c36-3a0c1e0b9a11")
	next := uuid.MustParse("0b7d0a52-1f2b-4b7e-9d59-2f6b1d1b5c22")
	calls := 0
	g.newID = func() uuid.UUID {
		calls++
		if calls <= 2 {
			return fixed
		}
		return next
	}

	first, err := g.AddPlayer("A")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.RemovePlayer(first); err != nil {
		t.Fatal(err)
	}
	second, err := g.AddPlayer("B")
	if err != nil {
		t.Fatal(err)
	}
	if second == first {
		t.Fatalf("identity %s reused after removal", first)
	}
	if second != next {
		t.Fatalf("expected generator to be retried, got %s", second)
	}
}

func TestRemovePlayer_EmptyGame(t *testing.T) {
	g := newTestGame(t)
	id := uuid.New()
	err := g.RemovePlayer(id)
	var leaveErr *LeaveGameError
	if !errors.As(err, &leaveErr) || leaveErr.Kind != PlayerNotFound {
		t.Fatalf("expected LeaveGameError{PlayerNotFound}, got %v", err)
	}
	if leaveErr.PlayerID != id {
		t.Fatalf("expected error to carry %s, got %s", id, leaveErr.PlayerID)
	}
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected errors.Is(err, ErrPlayerNotFound)")
	}
}

func TestRemovePlayer_Twice(t *testing.T) {
	g := newTestGame(t)
	id, err := g.AddPlayer("A")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.RemovePlayer(id); err != nil {
		t.Fatalf("RemovePlayer err: %v", err)
	}
	if g.PlayerCount() != 0 {
		t.Fatalf("expected empty game, got %d players", g.PlayerCount())
	}
	if err := g.RemovePlayer(id); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound on second removal, got %v", err)
	}
}

func TestRemovePlayer_PreservesOrder(t *testing.T) {
	g := newTestGame(t)
	var ids []uuid.UUID
	for _, n := range []string{"A", "B", "C", "D"} {
		id, err := g.AddPlayer(n)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	if err := g.RemovePlayer(ids[1]); err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "C", "D"}
	for i, p := range g.Players() {
		if p.Name() != want[i] {
			t.Fatalf("seat %d: expected %s, got %s", i, want[i], p.Name())
		}
	}
}

func TestRemovePlayer_ReclampsIndices(t *testing.T) {
	g := newTestGame(t)
	var ids []uuid.UUID
	for _, n := range []string{"A", "B", "C"} {
		id, err := g.AddPlayer(n)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	// Button and turn on C; removing A keeps them on C.
	g.buttonIndex, g.turnIndex = 2, 2
	if err := g.RemovePlayer(ids[0]); err != nil {
		t.Fatal(err)
	}
	if g.ButtonIndex() != 1 || g.TurnIndex() != 1 {
		t.Fatalf("expected indices to follow C to 1, got button=%d turn=%d", g.ButtonIndex(), g.TurnIndex())
	}

	// Removing the last seat while it holds the button wraps to the first.
	if err := g.RemovePlayer(ids[2]); err != nil {
		t.Fatal(err)
	}
	if g.ButtonIndex() != 0 || g.TurnIndex() != 0 {
		t.Fatalf("expected indices to wrap to 0, got button=%d turn=%d", g.ButtonIndex(), g.TurnIndex())
	}

	if err := g.RemovePlayer(ids[1]); err != nil {
		t.Fatal(err)
	}
	if g.ButtonIndex() != 0 || g.TurnIndex() != 0 {
		t.Fatalf("expected indices reset on empty game, got button=%d turn=%d", g.ButtonIndex(), g.TurnIndex())
	}
}

func TestReclampIndex(t *testing.T) {
	cases := []struct {
		cur, removed, n, want int
	}{
		{cur: 0, removed: 0, n: 2, want: 0},
		{cur: 1, removed: 0, n: 2, want: 0},
		{cur: 2, removed: 2, n: 2, want: 0},
		{cur: 1, removed: 2, n: 2, want: 1},
		{cur: 3, removed: 1, n: 3, want: 2},
		{cur: 0, removed: 0, n: 0, want: 0},
	}
	for _, c := range cases {
		if got := reclampIndex(c.cur, c.removed, c.n); got != c.want {
			t.Fatalf("reclampIndex(%d,%d,%d) = %d, want %d", c.cur, c.removed, c.n, got, c.want)
		}
	}
}

func TestStart_InsufficientPlayers(t *testing.T) {
	g := newTestGame(t)
	if err := g.Start(); !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("expected InsufficientPlayers with 0 players, got %v", err)
	}
	if _, err := g.AddPlayer("A"); err != nil {
		t.Fatal(err)
	}
	err := g.Start()
	var startErr *GameStartError
	if !errors.As(err, &startErr) || startErr.Kind != InsufficientPlayers {
		t.Fatalf("expected GameStartError{InsufficientPlayers} with 1 player, got %v", err)
	}
	if g.Phase() != PhaseWaiting {
		t.Fatalf("failed start must not change phase, got %v", g.Phase())
	}
}

func TestStart_OnlyOnce(t *testing.T) {
	g := newTestGame(t)
	for _, n := range []string{"A", "B"} {
		if _, err := g.AddPlayer(n); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	if g.Phase() != PhasePreFlop {
		t.Fatalf("expected preflop, got %v", g.Phase())
	}
	for i := 0; i < 2; i++ {
		err := g.Start()
		var startErr *GameStartError
		if !errors.As(err, &startErr) || startErr.Kind != GameInProgress {
			t.Fatalf("expected GameStartError{GameInProgress}, got %v", err)
		}
	}
	if g.Phase() != PhasePreFlop {
		t.Fatalf("repeated start must not change phase, got %v", g.Phase())
	}
}

func TestStart_InProgressWinsOverPlayerCount(t *testing.T) {
	g := newTestGame(t)
	a, _ := g.AddPlayer("A")
	b, _ := g.AddPlayer("B")
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.RemovePlayer(a); err != nil {
		t.Fatal(err)
	}
	if err := g.RemovePlayer(b); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("expected GameInProgress regardless of player count, got %v", err)
	}
}

func TestScenario_FullTableRejectsNinth(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < MaxPlayers; i++ {
		if _, err := g.AddPlayer(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.AddPlayer("ninth"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}
	if g.PlayerCount() != MaxPlayers {
		t.Fatalf("expected %d players, got %d", MaxPlayers, g.PlayerCount())
	}
}

func TestErrorKinds_AreDistinct(t *testing.T) {
	if errors.Is(ErrInsufficientPlayers, ErrGameInProgress) {
		t.Fatalf("start error kinds must not match each other")
	}
	if errors.Is(ErrGameFull, ErrPlayerNotFound) {
		t.Fatalf("join and leave errors must not match")
	}
	wrapped := fmt.Errorf("table: %w", &LeaveGameError{Kind: PlayerNotFound, PlayerID: uuid.New()})
	if !errors.Is(wrapped, ErrPlayerNotFound) {
		t.Fatalf("expected wrapped leave error to match ErrPlayerNotFound")
	}
}
