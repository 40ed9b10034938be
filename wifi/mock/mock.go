package mock

import (
	"sync"
	"time"

	"github.com/shazow/wifisearch/wifi"
)

var DefaultActionSleep = 500 * time.Millisecond

// Backend is a mock implementation of wifi.Backend. Each Scan returns the
// next snapshot in Snapshots, repeating the last one once they run out.
type Backend struct {
	mu sync.Mutex

	Snapshots          [][]wifi.AccessPoint
	Saved              []wifi.SavedNetwork
	ScanError          error
	SavedNetworksError error
	WirelessEnabled    bool
	Range              wifi.SignalRange

	// ActionSleep is a delay before every action, to better emulate a real-world backend for the frontend. Set to 0 during testing.
	ActionSleep time.Duration

	scans int
}

// New creates a new mock.Backend with a list of fun wifi networks. Some
// networks only show up on later scans.
func New() *Backend {
	first := []wifi.AccessPoint{
		{SSID: "HideYoKidsHideYoWiFi", BSSID: "02:00:00:00:00:01", Signal: -71, Frequency: 2412},
		{SSID: "GET off my LAN", BSSID: "02:00:00:00:00:02", Signal: -83, Frequency: 2437},
		{SSID: "NeverGonnaGiveYouIP", BSSID: "02:00:00:00:00:03", Signal: -64, Frequency: 5180},
		{SSID: "", BSSID: "02:00:00:00:00:04", Signal: -45, Frequency: 2462},
		{SSID: "Unencrypted_Honeypot", BSSID: "02:00:00:00:00:05", Signal: -58, Frequency: 2412},
		{SSID: "Multi-AP Network", BSSID: "00:11:22:33:44:55", Signal: -52, Frequency: 2412},
		{SSID: "Multi-AP Network", BSSID: "AA:BB:CC:DD:EE:FF", Signal: -61, Frequency: 5180},
		{SSID: "multi-ap network", BSSID: "11:22:33:44:55:66", Signal: -77, Frequency: 5240},
		{SSID: "Dunder MiffLAN", BSSID: "02:00:00:00:00:06", Signal: -69, Frequency: 2437},
	}
	second := append(append([]wifi.AccessPoint(nil), first...),
		wifi.AccessPoint{SSID: "TacoBoutAGoodSignal", BSSID: "02:00:00:00:00:07", Signal: -38, Frequency: 5745},
		wifi.AccessPoint{SSID: "Password is password", BSSID: "02:00:00:00:00:08", Signal: -66, Frequency: 2412},
	)

	return &Backend{
		Snapshots: [][]wifi.AccessPoint{first, second},
		Saved: []wifi.SavedNetwork{
			{SSID: `"HideYoKidsHideYoWiFi"`, ID: "hideyokids", AutoConnect: true},
			{SSID: `"GET off my LAN"`, ID: "getoff"},
			{SSID: `"Password is password"`, ID: "password", AutoConnect: true},
			{SSID: `"I See Dead Packets"`, ID: "deadpackets", Hidden: true},
		},
		WirelessEnabled: true,
		Range:           wifi.RangeDBm,
		ActionSleep:     DefaultActionSleep,
	}
}

// Scan returns the next scripted snapshot.
func (m *Backend) Scan() ([]wifi.AccessPoint, error) {
	time.Sleep(m.ActionSleep)

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.scans
	m.scans++

	if !m.WirelessEnabled {
		return nil, wifi.ErrWirelessDisabled
	}
	if m.ScanError != nil {
		return nil, m.ScanError
	}
	if len(m.Snapshots) == 0 {
		return nil, nil
	}
	if i >= len(m.Snapshots) {
		i = len(m.Snapshots) - 1
	}

	// Copy so callers can't reach into the script.
	return append([]wifi.AccessPoint(nil), m.Snapshots[i]...), nil
}

// Scans returns how many times Scan was called.
func (m *Backend) Scans() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scans
}

func (m *Backend) SavedNetworks() ([]wifi.SavedNetwork, error) {
	time.Sleep(m.ActionSleep)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SavedNetworksError != nil {
		return nil, m.SavedNetworksError
	}
	return append([]wifi.SavedNetwork(nil), m.Saved...), nil
}

func (m *Backend) SignalRange() wifi.SignalRange {
	return m.Range
}
