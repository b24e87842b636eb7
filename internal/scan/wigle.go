package scan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrNoData means no Wigle log has been written yet.
var ErrNoData = errors.New("no wigle data")

var wigleHeader = []string{
	"MAC", "SSID", "AuthMode", "FirstSeen", "Channel", "RSSI",
	"CurrentLatitude", "CurrentLongitude", "Type",
}

// WigleLog appends scanned networks to a CSV file in the Wigle upload format.
type WigleLog struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewWigleLog(path string) *WigleLog {
	return &WigleLog{path: path, now: time.Now}
}

// Path is the CSV file location.
func (l *WigleLog) Path() string { return l.path }

// Append writes one row per network, creating the file with its header when
// it is missing or empty.
func (l *WigleLog) Append(nets ...Network) error {
	if len(nets) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open wigle log: %w", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat wigle log: %w", err)
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(wigleHeader); err != nil {
			return err
		}
	}
	seen := l.now().UTC().Format("2006-01-02 15:04:05")
	for _, n := range nets {
		row := []string{
			n.BSSID,
			strings.ReplaceAll(n.SSID, ",", "_"),
			n.Auth,
			seen,
			strconv.Itoa(n.Channel),
			strconv.Itoa(n.RSSI),
			"0.00000",
			"0.00000",
			"WIFI",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Open returns the CSV for download.
func (l *WigleLog) Open() (io.ReadCloser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("open wigle log: %w", err)
	}
	return f, nil
}

// Clear deletes the log.
func (l *WigleLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := os.Remove(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoData
	}
	return err
}
