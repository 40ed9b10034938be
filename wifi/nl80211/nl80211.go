//go:build linux

// Package nl80211 reports the access point each wireless station is
// associated with, read directly from the kernel over netlink. It cannot
// trigger scans or list saved networks, so it is a last resort for hosts
// without NetworkManager or iwd.
package nl80211

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	nl "github.com/mdlayher/wifi"

	"github.com/shazow/wifisearch/wifi"
)

// client is the subset of *nl.Client the backend uses.
type client interface {
	Interfaces() ([]*nl.Interface, error)
	BSS(ifi *nl.Interface) (*nl.BSS, error)
	StationInfo(ifi *nl.Interface) ([]*nl.StationInfo, error)
	Close() error
}

// Backend implements wifi.ScanProvider over nl80211.
type Backend struct {
	client client
	logger *slog.Logger
}

// dial opens the netlink connection used by New.
var dial = func() (client, error) {
	c, err := nl.New()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// New opens a netlink connection.
func New(logger *slog.Logger) (*Backend, error) {
	c, err := dial()
	if err != nil {
		return nil, fmt.Errorf("failed to open nl80211: %w: %w", wifi.ErrNotAvailable, err)
	}
	return &Backend{client: c, logger: logger}, nil
}

func (b *Backend) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// Close releases the netlink connection.
func (b *Backend) Close() error {
	return b.client.Close()
}

// Scan returns one access point per associated station interface.
func (b *Backend) Scan() ([]wifi.AccessPoint, error) {
	ifaces, err := b.client.Interfaces()
	if err != nil {
		return nil, err
	}

	var aps []wifi.AccessPoint
	found := false
	for _, ifi := range ifaces {
		if ifi.Type != nl.InterfaceTypeStation {
			continue
		}
		found = true

		bss, err := b.client.BSS(ifi)
		if errors.Is(err, os.ErrNotExist) {
			// Not associated.
			continue
		}
		if err != nil {
			b.log().Warn("failed to read bss", "interface", ifi.Name, "error", err)
			continue
		}

		ap := wifi.AccessPoint{
			SSID:      bss.SSID,
			BSSID:     bss.BSSID.String(),
			Signal:    wifi.RangeDBm.Min,
			Frequency: uint(bss.Frequency),
		}
		stations, err := b.client.StationInfo(ifi)
		if err != nil {
			b.log().Debug("no station info", "interface", ifi.Name, "error", err)
		}
		for _, s := range stations {
			if s.HardwareAddr.String() == ap.BSSID || len(stations) == 1 {
				ap.Signal = s.Signal
				break
			}
		}
		aps = append(aps, ap)
	}
	if !found {
		return nil, fmt.Errorf("no station interface found: %w", wifi.ErrNotFound)
	}
	return aps, nil
}

// SignalRange reports nl80211's dBm signal scale.
func (b *Backend) SignalRange() wifi.SignalRange {
	return wifi.RangeDBm
}
