package models

// ========================= Wire Models =========================
// Shapes exchanged with the game server. The client treats them as opaque
// read-only records and never patches them locally.

// Monster is one entry of the scan list.
type Monster struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// PartySlot is one monster held in the player's party.
type PartySlot struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	HP      int    `json:"hp"`
	Defense int    `json:"defense"`
}

type MonstersResponse struct {
	Monsters []Monster `json:"monsters"`
}

type PartyResponse struct {
	PartySize int         `json:"partySize"`
	Party     []PartySlot `json:"party"`
}

// PartyMessage is returned by the remove and swap endpoints.
type PartyMessage struct {
	Message   string      `json:"message"`
	PartySize int         `json:"partySize,omitempty"`
	Party     []PartySlot `json:"party,omitempty"`
}

// BattleStart describes both combatants at the start of a battle.
type BattleStart struct {
	InProgress bool   `json:"inProgress"`
	PartyName  string `json:"partyName"`
	PartyLevel int    `json:"partyLevel"`
	PartyHP    int    `json:"partyHP"`
	WildName   string `json:"wildName"`
	WildLevel  int    `json:"wildLevel"`
	WildHP     int    `json:"wildHP"`
}

// BattleTurn is the outcome of one battle action.
type BattleTurn struct {
	Message   string `json:"message"`
	PartyHP   int    `json:"partyHP"`
	WildHP    int    `json:"wildHP"`
	BattleEnd bool   `json:"battleEnd"`
}

// Battle actions understood by the server.
const (
	ActionAttack  = "attack"
	ActionDefend  = "defend"
	ActionCapture = "capture"
	ActionRun     = "run"
)

// WebSocket message structure
type WsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
