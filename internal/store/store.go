// Package store persists the game world: the player profile, the party and the
// set of networks already turned into monsters.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pefman/packet-pals/internal/game"
)

const (
	playerFile = "player.json"
	partyFile  = "userparty.json"
	bssidFile  = "bssids.json"
)

// Dir keeps each part of the world in its own JSON file under Root.
type Dir struct {
	Root string
	mu   sync.Mutex
}

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Dir{Root: root}, nil
}

// load returns false when the file does not exist yet.
func (d *Dir) load(name string, out any) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(d.Root, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (d *Dir) save(name string, v any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	path := filepath.Join(d.Root, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	// write atomically
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (d *Dir) LoadPlayer() (game.Player, bool, error) {
	var p game.Player
	ok, err := d.load(playerFile, &p)
	return p, ok, err
}

func (d *Dir) SavePlayer(p game.Player) error { return d.save(playerFile, p) }

func (d *Dir) LoadParty() ([]game.Monster, error) {
	var doc struct {
		Party []game.Monster `json:"party"`
	}
	_, err := d.load(partyFile, &doc)
	return doc.Party, err
}

func (d *Dir) SaveParty(party []game.Monster) error {
	if party == nil {
		party = []game.Monster{}
	}
	return d.save(partyFile, map[string]any{"party": party})
}

func (d *Dir) LoadBSSIDs() ([]string, error) {
	var doc struct {
		BSSIDs []string `json:"bssids"`
	}
	_, err := d.load(bssidFile, &doc)
	return doc.BSSIDs, err
}

func (d *Dir) SaveBSSIDs(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return d.save(bssidFile, map[string]any{"bssids": ids})
}

// Memory keeps the world in process; used by tests and -ephemeral runs.
type Memory struct {
	mu        sync.Mutex
	player    *game.Player
	party     []game.Monster
	bssids    []string
	SaveCount int
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) LoadPlayer() (game.Player, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player == nil {
		return game.Player{}, false, nil
	}
	return *m.player, true, nil
}

func (m *Memory) SavePlayer(p game.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.player = &p
	m.SaveCount++
	return nil
}

func (m *Memory) LoadParty() ([]game.Monster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]game.Monster(nil), m.party...), nil
}

func (m *Memory) SaveParty(party []game.Monster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.party = append([]game.Monster(nil), party...)
	m.SaveCount++
	return nil
}

func (m *Memory) LoadBSSIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bssids...), nil
}

func (m *Memory) SaveBSSIDs(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bssids = append([]string(nil), ids...)
	m.SaveCount++
	return nil
}
