//go:build linux

package networkmanager

import (
	"fmt"
	"log/slog"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"

	"github.com/shazow/wifisearch/wifi"
)

const wirelessType = "802-11-wireless"

// Backend implements wifi.Backend using D-Bus to communicate with NetworkManager.
type Backend struct {
	NM       gonetworkmanager.NetworkManager
	Settings gonetworkmanager.Settings

	wirelessDevice gonetworkmanager.DeviceWireless
	logger         *slog.Logger
}

// New creates a new networkmanager.Backend.
func New(logger *slog.Logger) (*Backend, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create network manager client: %w", wifi.ErrNotAvailable)
	}

	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", wifi.ErrOperationFailed)
	}

	return &Backend{
		NM:       nm,
		Settings: settings,
		logger:   logger,
	}, nil
}

func (b *Backend) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// getWirelessDevice returns the first wireless device, looking it up only once.
func (b *Backend) getWirelessDevice() (gonetworkmanager.DeviceWireless, error) {
	if b.wirelessDevice != nil {
		return b.wirelessDevice, nil
	}

	devices, err := b.NM.GetDevices()
	if err != nil {
		return nil, err
	}
	for _, device := range devices {
		if dev, ok := device.(gonetworkmanager.DeviceWireless); ok {
			b.wirelessDevice = dev
			return dev, nil
		}
	}
	return nil, fmt.Errorf("no wireless device found: %w", wifi.ErrNotFound)
}

// Scan requests a scan and returns the access points NetworkManager reports.
// Signal is NetworkManager's 0-100 strength.
func (b *Backend) Scan() ([]wifi.AccessPoint, error) {
	enabled, err := b.NM.GetPropertyWirelessEnabled()
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, wifi.ErrWirelessDisabled
	}

	device, err := b.getWirelessDevice()
	if err != nil {
		return nil, err
	}

	// NetworkManager refuses scans requested too soon after the previous one,
	// but the access points it already knows are still worth returning.
	if err := device.RequestScan(); err != nil {
		b.log().Debug("scan request rejected", "error", err)
	}

	nmAccessPoints, err := device.GetAccessPoints()
	if err != nil {
		return nil, err
	}

	var aps []wifi.AccessPoint
	for _, nmAP := range nmAccessPoints {
		ssid, err := nmAP.GetPropertySSID()
		if err != nil {
			continue
		}
		strength, _ := nmAP.GetPropertyStrength()
		bssid, _ := nmAP.GetPropertyHWAddress()
		frequency, _ := nmAP.GetPropertyFrequency()

		aps = append(aps, wifi.AccessPoint{
			SSID:      ssid,
			BSSID:     bssid,
			Signal:    int(strength),
			Frequency: uint(frequency),
		})
	}
	return aps, nil
}

// SavedNetworks returns the wireless connection profiles.
func (b *Backend) SavedNetworks() ([]wifi.SavedNetwork, error) {
	connections, err := b.Settings.ListConnections()
	if err != nil {
		return nil, err
	}

	var nets []wifi.SavedNetwork
	for _, conn := range connections {
		s, err := conn.GetSettings()
		if err != nil {
			b.log().Debug("skipping unreadable connection", "path", conn.GetPath(), "error", err)
			continue
		}
		if n, ok := savedNetwork(s); ok {
			nets = append(nets, n)
		}
	}
	return nets, nil
}

// savedNetwork extracts a wifi.SavedNetwork from connection settings. It
// reports false for connections that aren't wireless.
func savedNetwork(s gonetworkmanager.ConnectionSettings) (wifi.SavedNetwork, bool) {
	c, ok := s["connection"]
	if !ok {
		return wifi.SavedNetwork{}, false
	}
	if t, _ := c["type"].(string); t != wirelessType {
		return wifi.SavedNetwork{}, false
	}

	n := wifi.SavedNetwork{AutoConnect: true}
	if id, ok := c["uuid"].(string); ok {
		n.ID = id
	}
	if ac, ok := c["autoconnect"].(bool); ok {
		n.AutoConnect = ac
	}
	if wireless, ok := s[wirelessType]; ok {
		if ssidBytes, ok := wireless["ssid"].([]byte); ok {
			n.SSID = string(ssidBytes)
		}
		if hidden, ok := wireless["hidden"].(bool); ok {
			n.Hidden = hidden
		}
	}
	return n, true
}

// SignalRange reports NetworkManager's 0-100 strength scale.
func (b *Backend) SignalRange() wifi.SignalRange {
	return wifi.RangePercent
}
