package view

import (
	"context"

	"github.com/pefman/packet-pals/internal/api"
	"go.uber.org/zap"
)

const (
	statusScanning   = "Scanning..."
	statusNoMonsters = "No monsters found."
)

// ScanAndList triggers a server scan, then replaces the cached list with the
// server's full list and goes back to the first page.
func (vm *ViewModel) ScanAndList(ctx context.Context) Screen {
	return vm.run(func() { vm.scanAndList(ctx) })
}

func (vm *ViewModel) scanAndList(ctx context.Context) {
	if vm.mode != ModeInBattle {
		vm.panel = panelStatus
		vm.status = statusScanning
	}

	if err := vm.backend.Scan(ctx); err != nil {
		vm.scanFailed(err)
		return
	}
	monsters, err := vm.backend.Monsters(ctx)
	if err != nil {
		vm.scanFailed(err)
		return
	}
	vm.leaveBattle()
	vm.monsters = monsters
	vm.pager = NewPager(len(monsters))
	vm.log.Debug("view: scan list replaced", zap.Int("monsters", len(monsters)))
	vm.showList()
}

// scanFailed reports the error. A running battle stays on screen and gets a
// notice instead.
func (vm *ViewModel) scanFailed(err error) {
	vm.log.Warn("view: scan failed", zap.Error(err))
	if vm.mode == ModeInBattle {
		vm.notify(NoticeError, "Error scanning: "+api.ErrorText(err))
		return
	}
	vm.panel = panelStatus
	vm.status = "Error scanning: " + api.ErrorText(err)
}

// showList renders the cached list at the current page.
func (vm *ViewModel) showList() {
	vm.mode = ModeIdle
	vm.panel = panelList
	vm.status = ""
	if len(vm.monsters) == 0 {
		vm.status = statusNoMonsters
	}
	vm.pager.Clamp()
}

func (vm *ViewModel) NextPage() Screen { return vm.run(vm.nextPage) }

func (vm *ViewModel) PrevPage() Screen { return vm.run(vm.prevPage) }

func (vm *ViewModel) nextPage() { vm.pager.Next() }

func (vm *ViewModel) prevPage() { vm.pager.Prev() }

// Page returns the pagination cursor.
func (vm *ViewModel) Page() Pager {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pager
}

// leaveBattle hides the battle panel without touching battleEnded.
func (vm *ViewModel) leaveBattle() {
	vm.cancelReset()
	vm.mode = ModeIdle
	vm.battle = nil
}
