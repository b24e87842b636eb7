package game

import "github.com/pefman/packet-pals/internal/models"

// MaxParty is the number of monsters a player can hold.
const MaxParty = 3

// Monster is a creature on the server, wild or in the party.
type Monster struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	HP      int    `json:"hp"`
	Defense int    `json:"defense"`
}

// NewMonster builds a monster at full health for its level.
func NewMonster(name string, level int) Monster {
	m := Monster{Name: name, Level: level}
	m.Recalc()
	return m
}

// Recalc restores HP and defense from the level. Level is never below 1.
func (m *Monster) Recalc() {
	if m.Level < 1 {
		m.Level = 1
	}
	m.HP = 30 + 5*(m.Level-1)
	m.Defense = 5 + (m.Level - 1)
}

func (m Monster) Slot() models.PartySlot {
	return models.PartySlot{Name: m.Name, Level: m.Level, HP: m.HP, Defense: m.Defense}
}

// Player is the trainer profile.
type Player struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	HasStarter bool   `json:"hasStarter"`
}

func DefaultPlayer() Player {
	return Player{Name: "NoName", Level: 1}
}

const starterName = "StarterPal"

// RuleError is a rejected request. Its text is shown to the player as is.
type RuleError string

func (e RuleError) Error() string { return string(e) }

const (
	ErrMissingBattleArgs RuleError = "Need wildIndex & partyIndex"
	ErrInvalidWildIndex  RuleError = "Invalid wildIndex"
	ErrInvalidPartyIndex RuleError = "Invalid partyIndex"
	ErrNoBattle          RuleError = "No battle in progress"
	ErrMissingAction     RuleError = "Missing action param"
	ErrUnknownAction     RuleError = "Unknown action"
	ErrMissingSlot       RuleError = "Missing slot"
	ErrInvalidSlot       RuleError = "Invalid slot"
	ErrFinalMonster      RuleError = "You cannot remove your final monster!"
	ErrMissingSwapSlots  RuleError = "Need slot1 & slot2"
	ErrInvalidSwapSlots  RuleError = "Invalid slot indices"
)
