package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifisearch/wifi"
)

// stubScanner returns snapshots in order, repeating the last one.
type stubScanner struct {
	snapshots [][]wifi.AccessPoint
	err       error
	calls     int
}

func (s *stubScanner) Scan() ([]wifi.AccessPoint, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.snapshots) == 0 {
		return nil, nil
	}
	i := s.calls - 1
	if i >= len(s.snapshots) {
		i = len(s.snapshots) - 1
	}
	return s.snapshots[i], nil
}

type stubProfiles struct {
	nets  []wifi.SavedNetwork
	err   error
	calls int
}

func (s *stubProfiles) SavedNetworks() ([]wifi.SavedNetwork, error) {
	s.calls++
	return s.nets, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestSearcher(scanner wifi.ScanProvider, profiles wifi.ProfileProvider, opts ...Option) *Searcher {
	return New(scanner, profiles, append([]Option{WithLogger(discardLogger())}, opts...)...)
}

var officeProfiles = []wifi.SavedNetwork{
	{SSID: `"Office"`, ID: "office"},
	{SSID: `"Cafe (5G)"`, ID: "cafe"},
	{SSID: `"Guest"`, ID: "guest"},
}

func TestSearcher_MissingPattern(t *testing.T) {
	scanner := &stubScanner{snapshots: [][]wifi.AccessPoint{homeSnapshot}}
	profiles := &stubProfiles{nets: officeProfiles}
	s := newTestSearcher(scanner, profiles)

	ap, err := s.FindAccessPoint("", true)
	assert.NoError(t, err)
	assert.Nil(t, ap)

	aps, err := s.FindAccessPoints("", false)
	assert.NoError(t, err)
	assert.Nil(t, aps)

	ssids, err := s.FindSSIDs("", false)
	assert.NoError(t, err)
	assert.Nil(t, ssids)

	net, err := s.FindSavedNetwork("")
	assert.NoError(t, err)
	assert.Nil(t, net)

	nets, err := s.FindSavedNetworks("")
	assert.NoError(t, err)
	assert.Nil(t, nets)

	saved, err := s.FindSavedSSIDs("")
	assert.NoError(t, err)
	assert.Nil(t, saved)

	assert.False(t, s.IsSaved(""))

	found, err := s.WaitForAccessPoint(context.Background(), "", time.Second, false)
	assert.NoError(t, err)
	assert.Nil(t, found)

	assert.Zero(t, scanner.calls, "no scans for a missing pattern")
	assert.Zero(t, profiles.calls, "no profile fetches for a missing pattern")
}

func TestSearcher_InvalidPattern(t *testing.T) {
	scanner := &stubScanner{}
	s := newTestSearcher(scanner, &stubProfiles{})

	_, err := s.FindAccessPoints("([", false)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	_, err = s.FindSavedNetwork("([")
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Zero(t, scanner.calls)
}

func TestSearcher_FindAccessPoints(t *testing.T) {
	scanner := &stubScanner{snapshots: [][]wifi.AccessPoint{homeSnapshot}}
	s := newTestSearcher(scanner, nil)

	ap, err := s.FindAccessPoint("Home|home", true)
	require.NoError(t, err)
	require.NotNil(t, ap)
	assert.Equal(t, wifi.AccessPoint{SSID: "home", BSSID: "aa:01", Signal: -40}, *ap)

	aps, err := s.FindAccessPoints("Home|home", false)
	require.NoError(t, err)
	assert.Equal(t, homeSnapshot[:2], aps)

	ssids, err := s.FindSSIDs("G.*", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Guest"}, ssids)

	assert.Equal(t, 3, scanner.calls, "every lookup takes a fresh scan")
}

func TestSearcher_ScanFailureIsEmpty(t *testing.T) {
	scanner := &stubScanner{err: wifi.ErrWirelessDisabled}
	s := newTestSearcher(scanner, nil)

	ap, err := s.FindAccessPoint(".*", false)
	assert.NoError(t, err)
	assert.Nil(t, ap)

	aps, err := s.FindAccessPoints(".*", false)
	assert.NoError(t, err)
	assert.Nil(t, aps)

	assert.Nil(t, s.NearbyAccessPoints())
}

func TestSearcher_NilProviders(t *testing.T) {
	s := newTestSearcher(nil, nil)

	ap, err := s.FindAccessPoint(".*", false)
	assert.NoError(t, err)
	assert.Nil(t, ap)

	nets, err := s.FindSavedNetworks(".*")
	assert.NoError(t, err)
	assert.Nil(t, nets)

	assert.False(t, s.IsSaved("Office"))
	assert.Nil(t, s.NearbyAccessPoints())
}

func TestSearcher_SavedNetworks(t *testing.T) {
	profiles := &stubProfiles{nets: officeProfiles}
	s := newTestSearcher(nil, profiles)

	net, err := s.FindSavedNetwork("Office")
	require.NoError(t, err)
	require.NotNil(t, net)
	assert.Equal(t, "office", net.ID)

	nets, err := s.FindSavedNetworks("(?!Guest).*")
	require.NoError(t, err)
	assert.Equal(t, officeProfiles[:2], nets)

	ssids, err := s.FindSavedSSIDs(".*")
	require.NoError(t, err)
	assert.Equal(t, []string{"Office", "Cafe (5G)", "Guest"}, ssids)
}

func TestSearcher_IsSaved(t *testing.T) {
	profiles := &stubProfiles{nets: officeProfiles}
	s := newTestSearcher(nil, profiles)

	assert.True(t, s.IsSaved("Office"))
	assert.True(t, s.IsSaved("Cafe (5G)"))
	assert.False(t, s.IsSaved("office"))
	assert.False(t, s.IsSaved("Off.*"))
	assert.False(t, s.IsSaved("Library"))
}

func TestSearcher_SavedNetworksFailure(t *testing.T) {
	profiles := &stubProfiles{err: errors.New("settings unavailable")}
	s := newTestSearcher(nil, profiles)

	nets, err := s.FindSavedNetworks(".*")
	assert.NoError(t, err)
	assert.Nil(t, nets)
	assert.False(t, s.IsSaved("Office"))
}

func TestSearcher_NearbyAccessPoints(t *testing.T) {
	scanner := &stubScanner{snapshots: [][]wifi.AccessPoint{homeSnapshot}}
	s := newTestSearcher(scanner, nil)

	assert.Equal(t, []wifi.AccessPoint{homeSnapshot[1], homeSnapshot[2]}, s.NearbyAccessPoints())
}
