// Package scan provides the wireless networks the game turns into monsters,
// and the Wigle CSV log every newly seen network is written to.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pefman/packet-pals/internal/engine"
	"gopkg.in/yaml.v3"
)

// Network is one access point seen by a scan.
type Network struct {
	BSSID   string `yaml:"bssid" json:"bssid"`
	SSID    string `yaml:"ssid" json:"ssid"`
	Auth    string `yaml:"auth" json:"auth"`
	Channel int    `yaml:"channel" json:"channel"`
	RSSI    int    `yaml:"rssi" json:"rssi"`
}

// Source produces the networks currently in range.
type Source interface {
	Scan(ctx context.Context) ([]Network, error)
}

var authModes = []string{"Open", "WEP", "WPA", "WPA2", "WPA_WPA2", "WPA2_ENTERPRISE"}

var ssidWords = []string{
	"Home", "Cafe", "Guest", "Office", "Library", "Linksys", "NETGEAR",
	"Airport", "Hotel", "Studio", "Garage", "Lobby", "Kitchen", "Mesh",
}

// Simulated is a fixed neighbourhood of networks; each scan sees a random
// subset of it, so repeated scans overlap the way real ones do.
type Simulated struct {
	dice    *engine.Roller
	area    []Network
	perScan int
}

// NewSimulated builds a neighbourhood of size networks, of which up to perScan
// are in range on any scan.
func NewSimulated(dice *engine.Roller, size, perScan int) *Simulated {
	if size <= 0 {
		size = 40
	}
	if perScan <= 0 || perScan > size {
		perScan = size
	}
	area := make([]Network, size)
	for i := range area {
		area[i] = Network{
			BSSID: fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
				dice.Intn(256)&0xFE, dice.Intn(256), dice.Intn(256), dice.Intn(256), dice.Intn(256), dice.Intn(256)),
			SSID:    fmt.Sprintf("%s-%d", ssidWords[dice.Intn(len(ssidWords))], dice.Between(1, 999)),
			Auth:    authModes[dice.Intn(len(authModes))],
			Channel: dice.Between(1, 13),
			RSSI:    dice.Between(-95, -30),
		}
	}
	return &Simulated{dice: dice, area: area, perScan: perScan}
}

func (s *Simulated) Scan(ctx context.Context) ([]Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := s.dice.Between(1, s.perScan)
	picked := make(map[int]bool, n)
	out := make([]Network, 0, n)
	for len(out) < n {
		i := s.dice.Intn(len(s.area))
		if picked[i] {
			continue
		}
		picked[i] = true
		nw := s.area[i]
		nw.RSSI = clampRSSI(nw.RSSI + s.dice.Between(-5, 5))
		out = append(out, nw)
	}
	return out, nil
}

func clampRSSI(v int) int {
	if v > -20 {
		return -20
	}
	if v < -100 {
		return -100
	}
	return v
}

// File reads networks from a YAML fixture on every scan, so the file can be
// edited while the server runs.
type File struct {
	Path string
}

type fileDoc struct {
	Networks []Network `yaml:"networks"`
}

func (f File) Scan(ctx context.Context) ([]Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Clean(f.Path))
	if err != nil {
		return nil, fmt.Errorf("read scan file: %w", err)
	}
	var doc fileDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse scan file %s: %w", f.Path, err)
	}
	for i := range doc.Networks {
		if doc.Networks[i].Auth == "" {
			doc.Networks[i].Auth = "Unknown"
		}
	}
	return doc.Networks, nil
}
