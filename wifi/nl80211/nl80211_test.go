//go:build linux

package nl80211

import (
	"errors"
	"log/slog"
	"net"
	"os"
	"testing"

	nl "github.com/mdlayher/wifi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifisearch/wifi"
)

type fakeClient struct {
	ifaces   []*nl.Interface
	bss      map[string]*nl.BSS
	bssErr   map[string]error
	stations map[string][]*nl.StationInfo
	closed   bool
}

func (f *fakeClient) Interfaces() ([]*nl.Interface, error) { return f.ifaces, nil }

func (f *fakeClient) BSS(ifi *nl.Interface) (*nl.BSS, error) {
	if err, ok := f.bssErr[ifi.Name]; ok {
		return nil, err
	}
	if bss, ok := f.bss[ifi.Name]; ok {
		return bss, nil
	}
	return nil, os.ErrNotExist
}

func (f *fakeClient) StationInfo(ifi *nl.Interface) ([]*nl.StationInfo, error) {
	return f.stations[ifi.Name], nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func mac(t *testing.T, s string) net.HardwareAddr {
	t.Helper()
	hw, err := net.ParseMAC(s)
	require.NoError(t, err)
	return hw
}

func TestScan(t *testing.T) {
	c := &fakeClient{
		ifaces: []*nl.Interface{
			{Name: "wlan0", Type: nl.InterfaceTypeStation},
			{Name: "wlan1", Type: nl.InterfaceTypeStation},
			{Name: "wlan2", Type: nl.InterfaceTypeStation},
			{Name: "ap0", Type: nl.InterfaceTypeAP},
		},
		bss: map[string]*nl.BSS{
			"wlan0": {SSID: "Office", BSSID: mac(t, "10:00:00:00:00:01"), Frequency: 5180},
			"ap0":   {SSID: "Hotspot", BSSID: mac(t, "20:00:00:00:00:01"), Frequency: 2412},
		},
		bssErr: map[string]error{"wlan2": errors.New("netlink: busy")},
		stations: map[string][]*nl.StationInfo{
			"wlan0": {{HardwareAddr: mac(t, "10:00:00:00:00:01"), Signal: -52}},
		},
	}
	b := &Backend{client: c, logger: slog.New(slog.DiscardHandler)}

	aps, err := b.Scan()
	require.NoError(t, err)
	assert.Equal(t, []wifi.AccessPoint{
		{SSID: "Office", BSSID: "10:00:00:00:00:01", Signal: -52, Frequency: 5180},
	}, aps)

	require.NoError(t, b.Close())
	assert.True(t, c.closed)
}

func TestScan_MissingStationInfo(t *testing.T) {
	c := &fakeClient{
		ifaces: []*nl.Interface{{Name: "wlan0", Type: nl.InterfaceTypeStation}},
		bss: map[string]*nl.BSS{
			"wlan0": {SSID: "Office", BSSID: mac(t, "10:00:00:00:00:01")},
		},
	}
	aps, err := (&Backend{client: c}).Scan()
	require.NoError(t, err)
	require.Len(t, aps, 1)
	assert.Equal(t, wifi.RangeDBm.Min, aps[0].Signal)
}

func TestScan_NoStation(t *testing.T) {
	c := &fakeClient{ifaces: []*nl.Interface{{Name: "ap0", Type: nl.InterfaceTypeAP}}}
	_, err := (&Backend{client: c}).Scan()
	assert.ErrorIs(t, err, wifi.ErrNotFound)
}

func TestScanOnly(t *testing.T) {
	backend := wifi.ScanOnly(&Backend{client: &fakeClient{}})
	_, err := backend.SavedNetworks()
	assert.ErrorIs(t, err, wifi.ErrNotSupported)
	assert.Equal(t, wifi.RangeDBm, wifi.RangeOf(backend))
}

func TestNew(t *testing.T) {
	orig := dial
	t.Cleanup(func() { dial = orig })

	dial = func() (client, error) { return nil, os.ErrPermission }
	_, err := New(nil)
	assert.ErrorIs(t, err, wifi.ErrNotAvailable)
	assert.ErrorIs(t, err, os.ErrPermission)

	c := &fakeClient{}
	dial = func() (client, error) { return c, nil }
	b, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.True(t, c.closed)
}
