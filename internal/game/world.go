package game

import (
	"strconv"
	"sync"

	"github.com/pefman/packet-pals/internal/engine"
	"github.com/pefman/packet-pals/internal/models"
	"github.com/pefman/packet-pals/internal/scan"
	"go.uber.org/zap"
)

// Store persists the parts of the world that survive a restart.
type Store interface {
	LoadPlayer() (Player, bool, error)
	SavePlayer(Player) error
	LoadParty() ([]Monster, error)
	SaveParty([]Monster) error
	LoadBSSIDs() ([]string, error)
	SaveBSSIDs([]string) error
}

type battleState struct {
	inProgress bool
	wildIndex  int
	partyIndex int
}

// World is the whole server-side game: one player, their party, the wild
// monsters spawned by scans and at most one running battle.
type World struct {
	mu     sync.Mutex
	store  Store
	dice   *engine.Roller
	log    *zap.Logger
	player Player
	party  []Monster
	wild   []Monster
	seen   map[string]bool
	order  []string
	battle battleState
}

// NewWorld loads persisted state and gives a first-time player the starter.
func NewWorld(store Store, dice *engine.Roller, log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{store: store, dice: dice, log: log, seen: map[string]bool{}}

	p, ok, err := store.LoadPlayer()
	if err != nil {
		return nil, err
	}
	if !ok {
		p = DefaultPlayer()
	}
	if p.Level < 1 {
		p.Level = 1
	}
	w.player = p

	party, err := store.LoadParty()
	if err != nil {
		return nil, err
	}
	if len(party) > MaxParty {
		party = party[:MaxParty]
	}
	for i := range party {
		party[i].Recalc()
	}
	w.party = party

	ids, err := store.LoadBSSIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if !w.seen[id] {
			w.seen[id] = true
			w.order = append(w.order, id)
		}
	}

	if !w.player.HasStarter {
		if len(w.party) < MaxParty {
			w.party = append(w.party, NewMonster(starterName, 1))
			w.saveParty()
		}
		w.player.HasStarter = true
		w.savePlayer()
		log.Info("game: assigned starter monster")
	}
	return w, nil
}

func (w *World) savePlayer() {
	if err := w.store.SavePlayer(w.player); err != nil {
		w.log.Warn("game: save player", zap.Error(err))
	}
}

func (w *World) saveParty() {
	if err := w.store.SaveParty(w.party); err != nil {
		w.log.Warn("game: save party", zap.Error(err))
	}
}

// Scan spawns a monster for every network not seen before and returns those
// networks.
func (w *World) Scan(nets []scan.Network) []scan.Network {
	w.mu.Lock()
	defer w.mu.Unlock()
	var fresh []scan.Network
	for _, n := range nets {
		if n.BSSID == "" || w.seen[n.BSSID] {
			continue
		}
		w.seen[n.BSSID] = true
		w.order = append(w.order, n.BSSID)
		fresh = append(fresh, n)
		w.wild = append(w.wild, NewMonster(randomName(w.dice), wildLevel(w.dice, w.player.Level)))
	}
	if len(fresh) > 0 {
		if err := w.store.SaveBSSIDs(w.order); err != nil {
			w.log.Warn("game: save bssids", zap.Error(err))
		}
	}
	return fresh
}

func (w *World) Monsters() []models.Monster {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Monster, len(w.wild))
	for i, m := range w.wild {
		out[i] = models.Monster{Name: m.Name, Level: m.Level}
	}
	return out
}

func (w *World) Party() models.PartyResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.partyResponse()
}

func (w *World) partyResponse() models.PartyResponse {
	slots := make([]models.PartySlot, len(w.party))
	for i, m := range w.party {
		slots[i] = m.Slot()
	}
	return models.PartyResponse{PartySize: len(w.party), Party: slots}
}

func (w *World) Player() Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.player
}

// StartBattle pits party slot partyIdx against wild monster wildIdx. A battle
// already running is replaced.
func (w *World) StartBattle(wildIdx, partyIdx int) (models.BattleStart, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if wildIdx < 0 || wildIdx >= len(w.wild) {
		return models.BattleStart{}, ErrInvalidWildIndex
	}
	if partyIdx < 0 || partyIdx >= len(w.party) {
		return models.BattleStart{}, ErrInvalidPartyIndex
	}
	w.battle = battleState{inProgress: true, wildIndex: wildIdx, partyIndex: partyIdx}
	p, wm := w.party[partyIdx], w.wild[wildIdx]
	return models.BattleStart{
		InProgress: true,
		PartyName:  p.Name,
		PartyLevel: p.Level,
		PartyHP:    p.HP,
		WildName:   wm.Name,
		WildLevel:  wm.Level,
		WildHP:     wm.HP,
	}, nil
}

// InBattle reports whether a battle is running.
func (w *World) InBattle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.battle.inProgress
}

// Turn is one resolved battle action. Captured is set when the turn ended
// the battle with the wild monster joining the party.
type Turn struct {
	models.BattleTurn
	Captured bool
}

// Act resolves one battle turn.
func (w *World) Act(action string) (Turn, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := w.battle
	if !b.inProgress || b.partyIndex >= len(w.party) || b.wildIndex >= len(w.wild) {
		w.battle = battleState{}
		return Turn{}, ErrNoBattle
	}
	if action == "" {
		return Turn{}, ErrMissingAction
	}
	party, wild := &w.party[b.partyIndex], &w.wild[b.wildIndex]

	out, err := Resolve(w.dice, action, party, wild, len(w.party) >= MaxParty)
	if err != nil {
		return Turn{}, err
	}
	msg := out.Message
	if wild.HP <= 0 {
		msg += " " + wild.Name + " fainted! Your monster wins!"
		party.Level++
		party.Recalc()
		w.player.Level++
		w.savePlayer()
		out.End = true
	}
	if party.HP <= 0 {
		msg += " " + party.Name + " fainted! The wild monster wins!"
		out.End = true
	}
	turn := Turn{
		BattleTurn: models.BattleTurn{Message: msg, PartyHP: party.HP, WildHP: wild.HP, BattleEnd: out.End},
		Captured:   out.End && out.Captured,
	}
	if !out.End {
		return turn, nil
	}

	w.battle = battleState{}
	if out.Captured {
		caught := *wild
		w.wild = append(w.wild[:b.wildIndex], w.wild[b.wildIndex+1:]...)
		w.party = append(w.party, caught)
	} else {
		wild.Recalc()
	}
	for i := range w.party {
		w.party[i].Recalc()
	}
	w.saveParty()
	return turn, nil
}

// Remove drops party slot i. The last monster cannot be removed.
func (w *World) Remove(i int) (models.PartyMessage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.party) {
		return models.PartyMessage{}, ErrInvalidSlot
	}
	if len(w.party) <= 1 {
		return models.PartyMessage{}, ErrFinalMonster
	}
	if w.battle.inProgress {
		w.battle = battleState{}
	}
	w.party = append(w.party[:i], w.party[i+1:]...)
	w.saveParty()
	resp := w.partyResponse()
	return models.PartyMessage{
		Message:   "Removed monster at slot " + strconv.Itoa(i),
		PartySize: resp.PartySize,
		Party:     resp.Party,
	}, nil
}

// Swap exchanges two party slots; a and b may be equal.
func (w *World) Swap(a, b int) (models.PartyMessage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.party)
	if a < 0 || a >= n || b < 0 || b >= n {
		return models.PartyMessage{}, ErrInvalidSwapSlots
	}
	w.party[a], w.party[b] = w.party[b], w.party[a]
	w.saveParty()
	resp := w.partyResponse()
	return models.PartyMessage{
		Message:   "Swapped slots " + strconv.Itoa(a) + " and " + strconv.Itoa(b),
		PartySize: resp.PartySize,
		Party:     resp.Party,
	}, nil
}
