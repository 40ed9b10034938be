//go:build linux && !mock

package main

import (
	"log/slog"

	"github.com/shazow/wifisearch/wifi"
	"github.com/shazow/wifisearch/wifi/iwd"
	"github.com/shazow/wifisearch/wifi/networkmanager"
	"github.com/shazow/wifisearch/wifi/nl80211"
)

func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	b, err := networkmanager.New(logger)
	if err == nil {
		return b, nil
	}
	logger.Warn("failed to initialize networkmanager backend, falling back to iwd", "error", err)

	// If networkmanager dbus backend failed to initialize, try the iwd backend
	ib, err := iwd.New(logger)
	if err == nil {
		return ib, nil
	}
	logger.Warn("failed to initialize iwd backend, falling back to nl80211", "error", err)

	// nl80211 only sees the associated access point and has no saved networks.
	nb, err := nl80211.New(logger)
	if err != nil {
		return nil, err
	}
	return wifi.ScanOnly(nb), nil
}
