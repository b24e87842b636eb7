// Package view holds the Packet Pals game view-model: the paginated monster
// list, the party roster and the battle panel. It owns no rendering surface;
// every operation returns a Screen describing what should be shown.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/pefman/packet-pals/internal/models"
	"go.uber.org/zap"
)

// ResetDelay is how long a finished battle stays on screen before the view
// returns to the list.
const ResetDelay = 2 * time.Second

// Backend is the game server as seen by the view-model.
type Backend interface {
	Scan(ctx context.Context) error
	Monsters(ctx context.Context) ([]models.Monster, error)
	StartBattle(ctx context.Context, wildIndex, partyIndex int) (models.BattleStart, error)
	BattleAction(ctx context.Context, action string) (models.BattleTurn, error)
	MyParty(ctx context.Context) ([]models.PartySlot, error)
	RemoveFromParty(ctx context.Context, slot int) (models.PartyMessage, error)
	SwapPartySlots(ctx context.Context, slot1, slot2 int) (models.PartyMessage, error)
	ClearWigle(ctx context.Context) error
}

// Prefs is durable per-player storage for small flags.
type Prefs interface {
	Bool(key string) bool
	SetBool(key string, v bool) error
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Mode is the battle state machine state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeInBattle
)

func (m Mode) String() string {
	if m == ModeInBattle {
		return "battle"
	}
	return "idle"
}

type panel int

const (
	panelNone panel = iota
	panelStatus
	panelList
	panelParty
)

// ViewModel is the state of one mounted game view. It is safe for concurrent
// use; operations are serialized.
type ViewModel struct {
	mu sync.Mutex

	backend    Backend
	log        *zap.Logger
	sched      Scheduler
	prefs      Prefs
	observer   func(Screen)
	resetDelay time.Duration
	steps      []TutorialStep

	monsters []models.Monster
	party    []models.PartySlot
	pager    Pager

	mode        Mode
	panel       panel
	status      string
	battle      *BattlePanel
	battleEnded bool
	resetTimer  Timer

	tutorialOpen bool
	tutorialStep int

	notices  []Notice
	navigate string
}

type Option func(*ViewModel)

func WithLogger(l *zap.Logger) Option {
	return func(vm *ViewModel) {
		if l != nil {
			vm.log = l
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(vm *ViewModel) {
		if s != nil {
			vm.sched = s
		}
	}
}

func WithPrefs(p Prefs) Option {
	return func(vm *ViewModel) {
		if p != nil {
			vm.prefs = p
		}
	}
}

// WithObserver registers fn to receive screens produced outside of a
// dispatch, such as the delayed return from a finished battle.
func WithObserver(fn func(Screen)) Option {
	return func(vm *ViewModel) { vm.observer = fn }
}

func WithResetDelay(d time.Duration) Option {
	return func(vm *ViewModel) {
		if d > 0 {
			vm.resetDelay = d
		}
	}
}

func WithTutorial(steps []TutorialStep) Option {
	return func(vm *ViewModel) {
		if len(steps) > 0 {
			vm.steps = steps
		}
	}
}

// New mounts a view-model against backend.
func New(backend Backend, opts ...Option) *ViewModel {
	vm := &ViewModel{
		backend:    backend,
		log:        zap.NewNop(),
		sched:      clockScheduler{},
		prefs:      newMemPrefs(),
		resetDelay: ResetDelay,
		steps:      DefaultTutorial,
	}
	for _, o := range opts {
		o(vm)
	}
	vm.reset()
	return vm
}

// Reset drops every cached snapshot and returns to the freshly mounted state.
func (vm *ViewModel) Reset() Screen {
	return vm.run(vm.reset)
}

func (vm *ViewModel) reset() {
	vm.cancelReset()
	vm.monsters = nil
	vm.party = nil
	vm.pager = NewPager(0)
	vm.mode = ModeIdle
	vm.panel = panelNone
	vm.status = ""
	vm.battle = nil
	vm.battleEnded = false
	vm.tutorialStep = 0
	vm.tutorialOpen = !vm.prefs.Bool(prefIntroDone)
	vm.notices = nil
	vm.navigate = ""
}

// Screen renders the current state.
func (vm *ViewModel) Screen() Screen {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return render(vm)
}

// BattleEnded reports whether the last battle reached a terminal state.
func (vm *ViewModel) BattleEnded() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.battleEnded
}

// Mode returns the current battle state machine state.
func (vm *ViewModel) Mode() Mode {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.mode
}

// run executes one operation under the lock and renders the result. Notices
// and navigation targets only live for the operation that produced them.
func (vm *ViewModel) run(fn func()) Screen {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.notices = nil
	vm.navigate = ""
	fn()
	s := render(vm)
	vm.notices = nil
	vm.navigate = ""
	return s
}

func (vm *ViewModel) notify(kind NoticeKind, text string) {
	vm.notices = append(vm.notices, Notice{Kind: kind, Text: text})
}

func (vm *ViewModel) cancelReset() {
	if vm.resetTimer != nil {
		vm.resetTimer.Stop()
		vm.resetTimer = nil
	}
}

// ========================= Wigle =========================

// DownloadWigle points the view at the export download.
func (vm *ViewModel) DownloadWigle() Screen {
	return vm.run(vm.downloadWigle)
}

func (vm *ViewModel) downloadWigle() {
	vm.navigate = WigleDownloadPath
}

// WigleDownloadPath is where the host serves the Wigle CSV export.
const WigleDownloadPath = "/downloadWigle"

func (vm *ViewModel) ClearWigle(ctx context.Context) Screen {
	return vm.run(func() { vm.clearWigle(ctx) })
}

func (vm *ViewModel) clearWigle(ctx context.Context) {
	if err := vm.backend.ClearWigle(ctx); err != nil {
		vm.log.Warn("view: clear wigle failed", zap.Error(err))
		vm.notify(NoticeError, failureText("Error clearing wigle data: ", err))
		return
	}
	vm.notify(NoticeSuccess, "Wigle data cleared!")
}
