package game

import (
	"fmt"

	"github.com/pefman/packet-pals/internal/engine"
	"github.com/pefman/packet-pals/internal/models"
)

// captureChance is the percent chance a capture attempt succeeds.
const captureChance = 30

// Damage rolls.
const (
	attackDice  = "1d5"
	counterDice = "1d4"
	guardedDice = "1d4/2"
)

// Outcome is the result of one resolved battle action.
type Outcome struct {
	Message     string
	End         bool
	Captured    bool
	WildFainted bool
}

// Resolve applies action to the two combatants in place. Fainting is checked
// by the caller, which owns level-ups and the party.
func Resolve(d *engine.Roller, action string, party, wild *Monster, partyFull bool) (Outcome, error) {
	var out Outcome
	switch action {
	case models.ActionAttack:
		pDmg := d.Roll(attackDice)
		wild.HP -= pDmg
		out.Message += fmt.Sprintf("%s attacked for %d dmg. ", party.Name, pDmg)
		if wild.HP > 0 {
			wDmg := d.Roll(counterDice)
			party.HP -= wDmg
			out.Message += fmt.Sprintf("%s countered for %d dmg. ", wild.Name, wDmg)
		}
	case models.ActionDefend:
		wDmg := d.Roll(guardedDice)
		if wDmg < 1 {
			wDmg = 1
		}
		party.HP -= wDmg
		out.Message += fmt.Sprintf("%s defended. %s hits for %d dmg.", party.Name, wild.Name, wDmg)
	case models.ActionCapture:
		switch {
		case partyFull:
			out.Message += "Party is full! Can't capture!"
		case d.Percent(captureChance):
			out.Message += fmt.Sprintf("Capture success! %s joined your party.", wild.Name)
			out.End = true
			out.Captured = true
		default:
			wDmg := d.Roll(counterDice)
			party.HP -= wDmg
			out.Message += fmt.Sprintf("Capture failed! %s hits for %d dmg.", wild.Name, wDmg)
		}
	case models.ActionRun:
		out.Message += "Ran away from battle!"
		out.End = true
	default:
		return Outcome{}, ErrUnknownAction
	}
	return out, nil
}
