package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	wifilog "github.com/shazow/wifisearch/internal/log"
	"github.com/shazow/wifisearch/internal/tui"
	"github.com/shazow/wifisearch/wifi"
	"github.com/shazow/wifisearch/wifi/search"
)

// errNoMatch makes the process exit 1 without printing an error.
var errNoMatch = errors.New("no match")

// app holds what every subcommand needs.
type app struct {
	out     io.Writer
	backend wifi.Backend
	cfg     Config
	logger  *slog.Logger
}

func (a *app) comparator() wifi.SignalComparator {
	return wifi.CompareSignalLevels(wifi.RangeOf(a.backend), a.cfg.SignalLevels)
}

func (a *app) searcher(logger *slog.Logger) *search.Searcher {
	return search.New(a.backend, a.backend,
		search.WithComparator(a.comparator()),
		search.WithInterval(a.cfg.Interval.Duration),
		search.WithLogger(logger),
	)
}

type accessPointJSON struct {
	SSID      string `json:"ssid"`
	BSSID     string `json:"bssid,omitempty"`
	Signal    int    `json:"signal"`
	Strength  uint8  `json:"strength"`
	Frequency uint   `json:"frequency,omitempty"`
}

type savedNetworkJSON struct {
	SSID        string `json:"ssid"`
	ID          string `json:"id,omitempty"`
	AutoConnect bool   `json:"autoconnect"`
	Hidden      bool   `json:"hidden"`
}

func (a *app) writeAccessPoint(ap wifi.AccessPoint) {
	strength := wifi.RangeOf(a.backend).Strength(ap.Signal)
	fmt.Fprintf(a.out, "%s\t%s\t%d\t%d%%\n", ap.SSID, ap.BSSID, ap.Signal, strength)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runList prints the access points matching pattern, strongest first. With
// no pattern it prints every nearby network once.
func (a *app) runList(pattern string, strongest, asJSON bool) error {
	var aps []wifi.AccessPoint
	if pattern == "" {
		aps = a.searcher(a.logger).NearbyAccessPoints()
	} else {
		var err error
		aps, err = a.searcher(a.logger).FindAccessPoints(pattern, strongest)
		if err != nil {
			return err
		}
	}
	wifi.SortAccessPoints(aps, a.comparator())

	if asJSON {
		out := []accessPointJSON{}
		r := wifi.RangeOf(a.backend)
		for _, ap := range aps {
			out = append(out, accessPointJSON{
				SSID:      ap.SSID,
				BSSID:     ap.BSSID,
				Signal:    ap.Signal,
				Strength:  r.Strength(ap.Signal),
				Frequency: ap.Frequency,
			})
		}
		return writeJSON(a.out, out)
	}
	for _, ap := range aps {
		a.writeAccessPoint(ap)
	}
	return nil
}

// runSSIDs prints the SSIDs of the access points matching pattern.
func (a *app) runSSIDs(pattern string, strongest bool) error {
	if pattern == "" {
		return errors.New("ssids requires a pattern")
	}
	ssids, err := a.searcher(a.logger).FindSSIDs(pattern, strongest)
	if err != nil {
		return err
	}
	for _, ssid := range ssids {
		fmt.Fprintln(a.out, ssid)
	}
	return nil
}

// runSaved prints the saved networks matching pattern, or all of them.
func (a *app) runSaved(pattern string, asJSON bool) error {
	if pattern == "" {
		pattern = ".*"
	}
	nets, err := a.searcher(a.logger).FindSavedNetworks(pattern)
	if err != nil {
		return err
	}

	if asJSON {
		out := []savedNetworkJSON{}
		for _, n := range nets {
			out = append(out, savedNetworkJSON{
				SSID:        n.Name(),
				ID:          n.ID,
				AutoConnect: n.AutoConnect,
				Hidden:      n.Hidden,
			})
		}
		return writeJSON(a.out, out)
	}
	for _, n := range nets {
		var flags string
		if n.AutoConnect {
			flags += " autoconnect"
		}
		if n.Hidden {
			flags += " hidden"
		}
		fmt.Fprintf(a.out, "%s\t%s%s\n", n.Name(), n.ID, flags)
	}
	return nil
}

// runKnown reports whether ssid has a saved profile.
func (a *app) runKnown(ssid string) error {
	if ssid == "" {
		return errors.New("known requires an ssid")
	}
	if a.searcher(a.logger).IsSaved(ssid) {
		fmt.Fprintln(a.out, "yes")
		return nil
	}
	fmt.Fprintln(a.out, "no")
	return errNoMatch
}

// runWait polls until an access point matching pattern shows up.
func (a *app) runWait(ctx context.Context, pattern string, timeout time.Duration, strongest bool) error {
	if pattern == "" {
		return errors.New("wait requires a pattern")
	}
	ap, err := a.searcher(a.logger).WaitForAccessPoint(ctx, pattern, timeout, strongest)
	if err != nil {
		return err
	}
	if ap == nil {
		fmt.Fprintf(a.out, "no access point matching %q after %s\n", pattern, timeout)
		return errNoMatch
	}
	a.writeAccessPoint(*ap)
	return nil
}

// runWatch polls like runWait while showing progress in a terminal view.
func (a *app) runWatch(ctx context.Context, pattern string, timeout time.Duration, strongest bool, opts ...tea.ProgramOption) error {
	if pattern == "" {
		return errors.New("watch requires a pattern")
	}

	logCh := make(chan tea.Msg, 64)
	wifilog.SetOutput(logCh)
	defer wifilog.SetOutput(nil)

	// The view shows every pass, independent of the -debug level.
	logger := slog.New(wifilog.NewTUIHandler(
		slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}),
		logCh,
	))
	s := a.searcher(logger)

	m := tui.NewWatchModel(ctx, pattern, wifi.RangeOf(a.backend), logCh,
		func(ctx context.Context) (*wifi.AccessPoint, error) {
			return s.WaitForAccessPoint(ctx, pattern, timeout, strongest)
		})
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	ap, err := m.Result()
	if err != nil {
		return err
	}
	if ap == nil {
		return errNoMatch
	}
	return nil
}
