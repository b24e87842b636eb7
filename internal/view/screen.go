package view

import (
	"fmt"

	"github.com/pefman/packet-pals/internal/api"
)

// NoticeKind classifies a transient notification.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message for the player (the browser shows it as a toast).
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// MonsterRow is one line of the scan list. Index is the wild index used to
// start a battle.
type MonsterRow struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Label string `json:"label"`
}

// PageInfo is present only while pagination controls are visible.
type PageInfo struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	First      int    `json:"first"`
	Last       int    `json:"last"`
	Text       string `json:"text"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
}

type PartyRow struct {
	Slot       int    `json:"slot"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	HP         int    `json:"hp"`
	Defense    int    `json:"defense"`
	Label      string `json:"label"`
	SwapPrompt string `json:"swapPrompt"`
}

// BattlePanel mirrors the latest battle response. It is replaced wholesale.
type BattlePanel struct {
	PartyName  string `json:"partyName"`
	PartyLevel int    `json:"partyLevel"`
	PartyHP    int    `json:"partyHP"`
	WildName   string `json:"wildName"`
	WildLevel  int    `json:"wildLevel"`
	WildHP     int    `json:"wildHP"`
	Log        string `json:"log"`
	Ended      bool   `json:"ended"`
}

type TutorialCard struct {
	Step     int    `json:"step"`
	Steps    int    `json:"steps"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ShowBack bool   `json:"showBack"`
	ShowNext bool   `json:"showNext"`
	ShowDone bool   `json:"showDone"`
}

// Screen is a complete render of the view-model.
type Screen struct {
	Mode     string        `json:"mode"`
	Status   string        `json:"status,omitempty"`
	Monsters []MonsterRow  `json:"monsters,omitempty"`
	Page     *PageInfo     `json:"page,omitempty"`
	Party    []PartyRow    `json:"party,omitempty"`
	Battle   *BattlePanel  `json:"battle,omitempty"`
	Notices  []Notice      `json:"notices,omitempty"`
	Navigate string        `json:"navigate,omitempty"`
	Tutorial *TutorialCard `json:"tutorial,omitempty"`
}

// render must be called with vm.mu held.
func render(vm *ViewModel) Screen {
	s := Screen{
		Mode:     vm.mode.String(),
		Navigate: vm.navigate,
		Tutorial: renderTutorial(vm),
	}
	if len(vm.notices) > 0 {
		s.Notices = append([]Notice(nil), vm.notices...)
	}
	if vm.mode == ModeInBattle {
		if vm.battle != nil {
			b := *vm.battle
			b.Ended = vm.battleEnded
			s.Battle = &b
		}
		return s
	}
	switch vm.panel {
	case panelStatus:
		s.Status = vm.status
	case panelList:
		s.Status = vm.status
		s.Monsters = renderMonsterRows(vm)
		s.Page = renderPageInfo(vm.pager)
	case panelParty:
		s.Status = vm.status
		s.Party = renderPartyRows(vm)
	}
	return s
}

func renderMonsterRows(vm *ViewModel) []MonsterRow {
	if len(vm.monsters) == 0 {
		return nil
	}
	start, end := vm.pager.Bounds()
	rows := make([]MonsterRow, 0, end-start)
	for i := start; i < end; i++ {
		m := vm.monsters[i]
		rows = append(rows, MonsterRow{
			Index: i,
			Name:  m.Name,
			Level: m.Level,
			Label: fmt.Sprintf("[%d] %s (Lv %d)", i, m.Name, m.Level),
		})
	}
	return rows
}

func renderPageInfo(p Pager) *PageInfo {
	if p.Total == 0 || !p.ControlsVisible() {
		return nil
	}
	start, end := p.Bounds()
	return &PageInfo{
		Page:       p.Page,
		TotalPages: p.TotalPages(),
		First:      start + 1,
		Last:       end,
		Text:       p.Indicator(),
		HasPrev:    p.Page > 0,
		HasNext:    p.Page < p.TotalPages()-1,
	}
}

func renderPartyRows(vm *ViewModel) []PartyRow {
	if len(vm.party) == 0 {
		return nil
	}
	rows := make([]PartyRow, 0, len(vm.party))
	for i, p := range vm.party {
		rows = append(rows, PartyRow{
			Slot:       i,
			Name:       p.Name,
			Level:      p.Level,
			HP:         p.HP,
			Defense:    p.Defense,
			Label:      fmt.Sprintf("Slot %d: %s (Lv %d, HP %d, Def %d)", i, p.Name, p.Level, p.HP, p.Defense),
			SwapPrompt: fmt.Sprintf("Swap slot %d with slot? [0..%d]", i, len(vm.party)-1),
		})
	}
	return rows
}

// failureText formats err for the player: server failures get prefix and the
// raw body, transport failures the generic "Error: " prefix.
func failureText(prefix string, err error) string {
	if api.IsStatus(err) {
		return prefix + api.ErrorText(err)
	}
	return "Error: " + api.ErrorText(err)
}
