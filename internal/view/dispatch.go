package view

import (
	"context"
	"errors"
	"fmt"
)

// Intent names understood by Dispatch.
const (
	IntentScan          = "scan"
	IntentParty         = "party"
	IntentPrevPage      = "prevPage"
	IntentNextPage      = "nextPage"
	IntentBattle        = "battle"
	IntentAction        = "action"
	IntentRemove        = "remove"
	IntentSwap          = "swap"
	IntentDownloadWigle = "downloadWigle"
	IntentClearWigle    = "clearWigle"
	IntentTutorialNext  = "tutorialNext"
	IntentTutorialBack  = "tutorialBack"
	IntentTutorialDone  = "tutorialDone"
)

var ErrUnknownIntent = errors.New("unknown intent")

// Intent is a UI event. Only the fields relevant to Type are read.
type Intent struct {
	Type       string  `json:"type"`
	WildIndex  int     `json:"wildIndex,omitempty"`
	PartyIndex int     `json:"partyIndex,omitempty"`
	Slot       int     `json:"slot,omitempty"`
	Target     *string `json:"target,omitempty"`
	Action     string  `json:"action,omitempty"`
}

type handlerFunc func(ctx context.Context, vm *ViewModel, in Intent)

var dispatchTable = map[string]handlerFunc{
	IntentScan:     func(ctx context.Context, vm *ViewModel, _ Intent) { vm.scanAndList(ctx) },
	IntentParty:    func(ctx context.Context, vm *ViewModel, _ Intent) { vm.viewParty(ctx) },
	IntentPrevPage: func(_ context.Context, vm *ViewModel, _ Intent) { vm.prevPage() },
	IntentNextPage: func(_ context.Context, vm *ViewModel, _ Intent) { vm.nextPage() },
	IntentBattle: func(ctx context.Context, vm *ViewModel, in Intent) {
		vm.startBattle(ctx, in.WildIndex, in.PartyIndex)
	},
	IntentAction: func(ctx context.Context, vm *ViewModel, in Intent) { vm.submitAction(ctx, in.Action) },
	IntentRemove: func(ctx context.Context, vm *ViewModel, in Intent) { vm.removeSlot(ctx, in.Slot) },
	IntentSwap: func(ctx context.Context, vm *ViewModel, in Intent) {
		vm.swapSlots(ctx, in.Slot, in.Target)
	},
	IntentDownloadWigle: func(_ context.Context, vm *ViewModel, _ Intent) { vm.downloadWigle() },
	IntentClearWigle:    func(ctx context.Context, vm *ViewModel, _ Intent) { vm.clearWigle(ctx) },
	IntentTutorialNext:  func(_ context.Context, vm *ViewModel, _ Intent) { vm.tutorialNext() },
	IntentTutorialBack:  func(_ context.Context, vm *ViewModel, _ Intent) { vm.tutorialBack() },
	IntentTutorialDone:  func(_ context.Context, vm *ViewModel, _ Intent) { vm.tutorialDone() },
}

// Dispatch routes in to its handler and returns the resulting screen.
func (vm *ViewModel) Dispatch(ctx context.Context, in Intent) (Screen, error) {
	h, ok := dispatchTable[in.Type]
	if !ok {
		return Screen{}, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
	}
	return vm.run(func() { h(ctx, vm, in) }), nil
}
