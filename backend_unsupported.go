//go:build !linux && !mock

package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/shazow/wifisearch/wifi"
)

// GetBackend returns an error for unsupported operating systems. Use
// -fixture to replay recorded scans instead.
func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	return nil, fmt.Errorf("no backend for %s: %w", runtime.GOOS, wifi.ErrNotSupported)
}
