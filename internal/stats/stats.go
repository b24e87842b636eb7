// Package stats keeps per-day counters of what happened on the game server.
package stats

import (
	"sync"
	"time"
)

// Outcome of a finished battle.
type Outcome string

const (
	Won      Outcome = "won"
	Lost     Outcome = "lost"
	Captured Outcome = "captured"
	Ran      Outcome = "ran"
)

// BestWin is the highest level wild monster beaten on a day.
type BestWin struct {
	Monster string `json:"monster"`
	Level   int    `json:"level"`
	By      string `json:"by"`
	At      int64  `json:"at"`
}

// Day is one UTC day of counters.
type Day struct {
	Date        string   `json:"date"`
	Scans       int      `json:"scans"`
	NewNetworks int      `json:"newNetworks"`
	Battles     int      `json:"battles"`
	Won         int      `json:"won"`
	Lost        int      `json:"lost"`
	Captured    int      `json:"captured"`
	Ran         int      `json:"ran"`
	BestWin     *BestWin `json:"bestWin,omitempty"`
}

// Tracker is safe for concurrent use. A nil Tracker records nothing.
type Tracker struct {
	mu   sync.Mutex
	days map[string]*Day
	now  func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{days: map[string]*Day{}, now: time.Now}
}

// today must be called with t.mu held.
func (t *Tracker) today() *Day {
	key := t.now().UTC().Format("2006-01-02")
	d := t.days[key]
	if d == nil {
		d = &Day{Date: key}
		t.days[key] = d
	}
	return d
}

func (t *Tracker) RecordScan(newNetworks int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.today()
	d.Scans++
	d.NewNetworks += newNetworks
}

func (t *Tracker) RecordBattleStart() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.today().Battles++
}

// RecordBattleEnd counts the outcome. For a win, the beaten monster competes
// for the day's best win; ties keep the earlier one.
func (t *Tracker) RecordBattleEnd(o Outcome, party, wild string, wildLevel int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.today()
	switch o {
	case Won:
		d.Won++
		if d.BestWin == nil || wildLevel > d.BestWin.Level {
			d.BestWin = &BestWin{Monster: wild, Level: wildLevel, By: party, At: t.now().Unix()}
		}
	case Lost:
		d.Lost++
	case Captured:
		d.Captured++
	case Ran:
		d.Ran++
	}
}

// Today returns a copy of the current day's counters.
func (t *Tracker) Today() Day {
	if t == nil {
		return Day{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	d := *t.today()
	if d.BestWin != nil {
		bw := *d.BestWin
		d.BestWin = &bw
	}
	return d
}
