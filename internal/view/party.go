package view

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/pefman/packet-pals/internal/api"
	"github.com/pefman/packet-pals/internal/models"
	"go.uber.org/zap"
)

const (
	statusLoadingParty = "Loading your party..."
	statusEmptyParty   = "Your party is empty!"
	msgInvalidSlot     = "Invalid slot"
)

// ErrInvalidSlot is returned by ParseSwapTarget for input that is not a
// slot index of the current party.
var ErrInvalidSlot = errors.New(msgInvalidSlot)

// ParseSwapTarget validates the free-text answer to the swap prompt against a
// party of size n. Self-swaps are allowed.
func ParseSwapTarget(input string, n int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 0 || v >= n {
		return 0, ErrInvalidSlot
	}
	return v, nil
}

// FetchParty replaces the cached party with the server's. A failure empties it.
func (vm *ViewModel) FetchParty(ctx context.Context) Screen {
	return vm.run(func() { vm.fetchParty(ctx) })
}

func (vm *ViewModel) fetchParty(ctx context.Context) {
	party, err := vm.backend.MyParty(ctx)
	if err != nil {
		vm.log.Warn("view: fetch party failed", zap.Error(err))
		vm.notify(NoticeError, "Error: "+api.ErrorText(err))
		vm.party = []models.PartySlot{}
		return
	}
	vm.party = party
}

// ViewParty shows the party, always from a fresh fetch.
func (vm *ViewModel) ViewParty(ctx context.Context) Screen {
	return vm.run(func() { vm.viewParty(ctx) })
}

func (vm *ViewModel) viewParty(ctx context.Context) {
	vm.leaveBattle()
	vm.panel = panelParty
	vm.status = statusLoadingParty
	vm.fetchParty(ctx)
	vm.status = ""
	if len(vm.party) == 0 {
		vm.status = statusEmptyParty
	}
}

// Party returns a copy of the cached party.
func (vm *ViewModel) Party() []models.PartySlot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]models.PartySlot(nil), vm.party...)
}

func (vm *ViewModel) RemoveSlot(ctx context.Context, slot int) Screen {
	return vm.run(func() { vm.removeSlot(ctx, slot) })
}

func (vm *ViewModel) removeSlot(ctx context.Context, slot int) {
	res, err := vm.backend.RemoveFromParty(ctx, slot)
	if err != nil {
		vm.log.Warn("view: remove from party failed", zap.Int("slot", slot), zap.Error(err))
		vm.notify(NoticeError, failureText("Error removing monster: ", err))
		return
	}
	vm.notify(NoticeInfo, res.Message)
	vm.viewParty(ctx)
}

// SwapSlots swaps slot with the slot named by the prompt answer. A nil answer
// means the prompt was dismissed. Invalid answers never reach the server.
func (vm *ViewModel) SwapSlots(ctx context.Context, slot int, answer *string) Screen {
	return vm.run(func() { vm.swapSlots(ctx, slot, answer) })
}

func (vm *ViewModel) swapSlots(ctx context.Context, slot int, answer *string) {
	if answer == nil {
		return
	}
	target, err := ParseSwapTarget(*answer, len(vm.party))
	if err != nil {
		vm.notify(NoticeError, msgInvalidSlot)
		return
	}
	res, err := vm.backend.SwapPartySlots(ctx, slot, target)
	if err != nil {
		vm.log.Warn("view: swap failed", zap.Int("slot1", slot), zap.Int("slot2", target), zap.Error(err))
		vm.notify(NoticeError, failureText("Error swapping: ", err))
		return
	}
	vm.notify(NoticeInfo, res.Message)
	vm.viewParty(ctx)
}
