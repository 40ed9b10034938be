//go:build mock

package main

import (
	"log/slog"

	"github.com/shazow/wifisearch/wifi"
	"github.com/shazow/wifisearch/wifi/mock"
)

func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	return mock.New(), nil
}
