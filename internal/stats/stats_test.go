package stats

import (
	"testing"
	"time"
)

func TestTracker_CountsPerDay(t *testing.T) {
	tr := NewTracker()
	now := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	tr.RecordScan(3)
	tr.RecordScan(0)
	tr.RecordBattleStart()
	tr.RecordBattleEnd(Won, "StarterPal", "CandyBat", 2)
	tr.RecordBattleEnd(Won, "StarterPal", "LavaDino", 5)
	tr.RecordBattleEnd(Won, "StarterPal", "MegaBee", 5)
	tr.RecordBattleEnd(Captured, "StarterPal", "FizzyCat", 1)

	d := tr.Today()
	if d.Date != "2024-03-01" || d.Scans != 2 || d.NewNetworks != 3 || d.Battles != 1 {
		t.Errorf("Unexpected counters %+v", d)
	}
	if d.Won != 3 || d.Captured != 1 || d.Lost != 0 {
		t.Errorf("Unexpected outcomes %+v", d)
	}
	if d.BestWin == nil || d.BestWin.Monster != "LavaDino" {
		t.Errorf("Expected LavaDino as best win, got %+v", d.BestWin)
	}

	now = now.Add(2 * time.Hour)
	if d := tr.Today(); d.Date != "2024-03-02" || d.Scans != 0 || d.BestWin != nil {
		t.Errorf("Expected a fresh day, got %+v", d)
	}
	if tr.Days() != 2 {
		t.Errorf("Expected 2 days, got %d", tr.Days())
	}
	tr.ResetDaily()
	if tr.Days() != 0 {
		t.Errorf("Expected no days after reset, got %d", tr.Days())
	}
}

func TestTracker_Nil(t *testing.T) {
	var tr *Tracker
	tr.RecordScan(1)
	tr.RecordBattleEnd(Lost, "a", "b", 1)
	if d := tr.Today(); d.Scans != 0 {
		t.Errorf("Nil tracker should record nothing, got %+v", d)
	}
}
