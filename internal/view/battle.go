package view

import (
	"context"
	"fmt"

	"github.com/pefman/packet-pals/internal/api"
	"go.uber.org/zap"
)

const (
	logBattleEnded     = "Battle ended.\n"
	logBattleEndedTurn = "Battle ended!\n"
)

// StartBattle starts a battle between the wild monster at wildIndex and the
// party monster at partyIndex. On success the view enters the battle mode.
func (vm *ViewModel) StartBattle(ctx context.Context, wildIndex, partyIndex int) Screen {
	return vm.run(func() { vm.startBattle(ctx, wildIndex, partyIndex) })
}

func (vm *ViewModel) startBattle(ctx context.Context, wildIndex, partyIndex int) {
	res, err := vm.backend.StartBattle(ctx, wildIndex, partyIndex)
	if err != nil {
		vm.log.Warn("view: start battle failed",
			zap.Int("wild_index", wildIndex), zap.Int("party_index", partyIndex), zap.Error(err))
		vm.notify(NoticeError, failureText("Error starting battle: ", err))
		return
	}
	vm.cancelReset()
	vm.battleEnded = false
	vm.mode = ModeInBattle
	vm.battle = &BattlePanel{
		PartyName:  res.PartyName,
		PartyLevel: res.PartyLevel,
		PartyHP:    res.PartyHP,
		WildName:   res.WildName,
		WildLevel:  res.WildLevel,
		WildHP:     res.WildHP,
		Log: fmt.Sprintf("Battle started!\nYour monster: %s (Lv %d, HP %d)\nWild monster: %s (Lv %d, HP %d)\n",
			res.PartyName, res.PartyLevel, res.PartyHP, res.WildName, res.WildLevel, res.WildHP),
	}
	vm.log.Debug("view: battle started", zap.String("party", res.PartyName), zap.String("wild", res.WildName))
}

// SubmitAction sends one battle action. Once the battle has ended it only
// logs the terminal message and never reaches the server.
func (vm *ViewModel) SubmitAction(ctx context.Context, action string) Screen {
	return vm.run(func() { vm.submitAction(ctx, action) })
}

func (vm *ViewModel) submitAction(ctx context.Context, action string) {
	if vm.battleEnded {
		vm.setLog(logBattleEnded)
		return
	}
	res, err := vm.backend.BattleAction(ctx, action)
	if err != nil {
		vm.log.Warn("view: battle action failed", zap.String("action", action), zap.Error(err))
		vm.setLog(fmt.Sprintf("Error: %s\n", api.ErrorText(err)))
		return
	}
	if vm.battle == nil {
		vm.battle = &BattlePanel{}
	}
	vm.battle.Log = fmt.Sprintf("%s\nParty HP: %d, Wild HP: %d\n", res.Message, res.PartyHP, res.WildHP)
	vm.battle.PartyHP = res.PartyHP
	vm.battle.WildHP = res.WildHP

	if res.BattleEnd {
		vm.battleEnded = true
		vm.battle.Log += logBattleEndedTurn
		vm.cancelReset()
		vm.resetTimer = vm.sched.AfterFunc(vm.resetDelay, vm.finishBattle)
		vm.log.Debug("view: battle ended", zap.Duration("reset_in", vm.resetDelay))
	}
}

func (vm *ViewModel) setLog(text string) {
	if vm.battle == nil {
		vm.battle = &BattlePanel{}
	}
	vm.battle.Log = text
}

// finishBattle is the delayed InBattle -> Idle transition. It re-renders the
// list already in memory instead of fetching it again.
func (vm *ViewModel) finishBattle() {
	vm.mu.Lock()
	if vm.mode != ModeInBattle || !vm.battleEnded {
		vm.mu.Unlock()
		return
	}
	vm.resetTimer = nil
	vm.battle = nil
	vm.notices = nil
	vm.navigate = ""
	vm.showList()
	s := render(vm)
	obs := vm.observer
	vm.mu.Unlock()

	if obs != nil {
		obs(s)
	}
}
