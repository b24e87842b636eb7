package stats

// This file contains helpers around daily stats. It complements stats.go.

// ResetDaily drops every recorded day. Served by the /resetStats endpoint.
func (t *Tracker) ResetDaily() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.days {
		delete(t.days, k)
	}
}

// Days returns how many days have counters.
func (t *Tracker) Days() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.days)
}
