package mock

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/shazow/wifisearch/wifi"
)

// fixtureFile is the TOML layout of a recorded environment. Each [[scan]]
// table is one snapshot, replayed in order.
type fixtureFile struct {
	// Signal is "dbm" (default) or "percent".
	Signal string         `toml:"signal"`
	Scans  []fixtureScan  `toml:"scan"`
	Saved  []fixtureSaved `toml:"saved"`
}

type fixtureScan struct {
	AccessPoints []fixtureAccessPoint `toml:"access_points"`
}

type fixtureAccessPoint struct {
	SSID      string `toml:"ssid"`
	BSSID     string `toml:"bssid"`
	Signal    int    `toml:"signal"`
	Frequency uint   `toml:"frequency"`
}

type fixtureSaved struct {
	SSID        string `toml:"ssid"`
	ID          string `toml:"id"`
	AutoConnect bool   `toml:"autoconnect"`
	Hidden      bool   `toml:"hidden"`
}

// ParseFixture reads a TOML fixture into a Backend that replays it with no
// action delay.
func ParseFixture(r io.Reader) (*Backend, error) {
	var f fixtureFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown fixture keys: %v", undecoded)
	}

	b := &Backend{
		WirelessEnabled: true,
		Range:           wifi.RangeDBm,
	}
	switch strings.ToLower(f.Signal) {
	case "", "dbm":
	case "percent":
		b.Range = wifi.RangePercent
	default:
		return nil, fmt.Errorf("invalid signal unit %q: %w", f.Signal, wifi.ErrNotSupported)
	}

	for _, s := range f.Scans {
		var snapshot []wifi.AccessPoint
		for _, ap := range s.AccessPoints {
			snapshot = append(snapshot, wifi.AccessPoint(ap))
		}
		b.Snapshots = append(b.Snapshots, snapshot)
	}
	for _, s := range f.Saved {
		b.Saved = append(b.Saved, wifi.SavedNetwork(s))
	}
	return b, nil
}

// LoadFixture reads a TOML fixture from path.
func LoadFixture(path string) (*Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFixture(f)
}
