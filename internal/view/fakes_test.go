package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pefman/packet-pals/internal/api"
	"github.com/pefman/packet-pals/internal/models"
)

// fakeBackend records calls and answers from canned data.
type fakeBackend struct {
	monsters []models.Monster
	party    []models.PartySlot

	scanErr   error
	listErr   error
	partyErr  error
	startErr  error
	actionErr error
	mutateErr error
	clearErr  error

	start models.BattleStart
	turns []models.BattleTurn

	calls map[string]int
	swaps [][2]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) Scan(context.Context) error {
	f.calls["scan"]++
	return f.scanErr
}

func (f *fakeBackend) Monsters(context.Context) ([]models.Monster, error) {
	f.calls["monsters"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Monster(nil), f.monsters...), nil
}

func (f *fakeBackend) StartBattle(_ context.Context, wildIndex, partyIndex int) (models.BattleStart, error) {
	f.calls["startBattle"]++
	return f.start, f.startErr
}

func (f *fakeBackend) BattleAction(_ context.Context, action string) (models.BattleTurn, error) {
	f.calls["battleAction"]++
	if f.actionErr != nil {
		return models.BattleTurn{}, f.actionErr
	}
	if len(f.turns) == 0 {
		return models.BattleTurn{Message: action}, nil
	}
	t := f.turns[0]
	f.turns = f.turns[1:]
	return t, nil
}

func (f *fakeBackend) MyParty(context.Context) ([]models.PartySlot, error) {
	f.calls["myParty"]++
	if f.partyErr != nil {
		return nil, f.partyErr
	}
	return append([]models.PartySlot(nil), f.party...), nil
}

func (f *fakeBackend) RemoveFromParty(_ context.Context, slot int) (models.PartyMessage, error) {
	f.calls["remove"]++
	if f.mutateErr != nil {
		return models.PartyMessage{}, f.mutateErr
	}
	f.party = append(f.party[:slot], f.party[slot+1:]...)
	return models.PartyMessage{Message: fmt.Sprintf("Removed monster at slot %d", slot)}, nil
}

func (f *fakeBackend) SwapPartySlots(_ context.Context, s1, s2 int) (models.PartyMessage, error) {
	f.calls["swap"]++
	f.swaps = append(f.swaps, [2]int{s1, s2})
	if f.mutateErr != nil {
		return models.PartyMessage{}, f.mutateErr
	}
	f.party[s1], f.party[s2] = f.party[s2], f.party[s1]
	return models.PartyMessage{Message: fmt.Sprintf("Swapped slots %d and %d", s1, s2)}, nil
}

func (f *fakeBackend) ClearWigle(context.Context) error {
	f.calls["clearWigle"]++
	return f.clearErr
}

func statusErr(body string) error {
	return &api.StatusError{Path: "/test", Code: 400, Body: body}
}

func transportErr() error {
	return &api.TransportError{Path: "/test", Err: errors.New("connection refused")}
}

// manualScheduler captures scheduled calls so tests fire them explicitly.
type manualScheduler struct {
	pending []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{d: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// fire runs every timer that has not been stopped.
func (s *manualScheduler) fire() {
	pending := s.pending
	s.pending = nil
	for _, t := range pending {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

func makeMonsters(n int) []models.Monster {
	out := make([]models.Monster, n)
	for i := range out {
		out[i] = models.Monster{Name: fmt.Sprintf("M%d", i+1), Level: 1 + i%5}
	}
	return out
}

func hasNotice(s Screen, kind NoticeKind, text string) bool {
	for _, n := range s.Notices {
		if n.Kind == kind && n.Text == text {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
