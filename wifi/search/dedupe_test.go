package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shazow/wifisearch/wifi"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		aps  []wifi.AccessPoint
		want []wifi.AccessPoint
	}{
		{
			name: "keeps stronger duplicate at first position",
			aps: []wifi.AccessPoint{
				{SSID: "Home", BSSID: "01", Signal: -70},
				{SSID: "Guest", BSSID: "02", Signal: -50},
				{SSID: "home", BSSID: "03", Signal: -40},
			},
			want: []wifi.AccessPoint{
				{SSID: "home", BSSID: "03", Signal: -40},
				{SSID: "Guest", BSSID: "02", Signal: -50},
			},
		},
		{
			name: "weaker duplicate is dropped",
			aps: []wifi.AccessPoint{
				{SSID: "Cafe", BSSID: "01", Signal: -45},
				{SSID: "CAFE", BSSID: "02", Signal: -80},
			},
			want: []wifi.AccessPoint{
				{SSID: "Cafe", BSSID: "01", Signal: -45},
			},
		},
		{
			name: "equal signal keeps the first",
			aps: []wifi.AccessPoint{
				{SSID: "Cafe", BSSID: "01", Signal: -50},
				{SSID: "Cafe", BSSID: "02", Signal: -50},
			},
			want: []wifi.AccessPoint{
				{SSID: "Cafe", BSSID: "01", Signal: -50},
			},
		},
		{
			name: "hidden access points are dropped",
			aps: []wifi.AccessPoint{
				{SSID: "", BSSID: "01", Signal: -20},
				{SSID: "Cafe", BSSID: "02", Signal: -50},
				{SSID: "", BSSID: "03", Signal: -30},
			},
			want: []wifi.AccessPoint{
				{SSID: "Cafe", BSSID: "02", Signal: -50},
			},
		},
		{
			name: "unicode case folding",
			aps: []wifi.AccessPoint{
				{SSID: "STRASSE", BSSID: "01", Signal: -60},
				{SSID: "strasse", BSSID: "02", Signal: -40},
				{SSID: "ΣΙΓΜΑ", BSSID: "03", Signal: -70},
				{SSID: "σιγμα", BSSID: "04", Signal: -65},
			},
			want: []wifi.AccessPoint{
				{SSID: "strasse", BSSID: "02", Signal: -40},
				{SSID: "σιγμα", BSSID: "04", Signal: -65},
			},
		},
		{
			name: "empty",
			aps:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matcher{}.Dedupe(tt.aps))
		})
	}
}

var dedupeSnapshot = []wifi.AccessPoint{
	{SSID: "A", BSSID: "01", Signal: -80},
	{SSID: "b", BSSID: "02", Signal: -60},
	{SSID: "a", BSSID: "03", Signal: -40},
	{SSID: "B", BSSID: "04", Signal: -90},
	{SSID: "", BSSID: "05", Signal: -10},
	{SSID: "A", BSSID: "06", Signal: -55},
	{SSID: "c", BSSID: "07", Signal: -75},
}

func TestDedupe_Idempotent(t *testing.T) {
	m := Matcher{}
	once := m.Dedupe(dedupeSnapshot)
	assert.Equal(t, once, m.Dedupe(once))
}

func TestDedupe_SignalMonotonic(t *testing.T) {
	m := Matcher{}
	for _, survivor := range m.Dedupe(dedupeSnapshot) {
		for _, ap := range dedupeSnapshot {
			if ap.SSID == "" || foldSSID(ap.SSID) != foldSSID(survivor.SSID) {
				continue
			}
			assert.GreaterOrEqual(t, wifi.CompareSignal(survivor.Signal, ap.Signal), 0,
				"%s (%d) outranked by %s (%d)", survivor.BSSID, survivor.Signal, ap.BSSID, ap.Signal)
		}
	}
}

func TestDedupe_UsesComparator(t *testing.T) {
	// Signals within the same bar rank equal, so the first stays.
	m := Matcher{Compare: wifi.CompareSignalLevels(wifi.RangeDBm, 2)}
	got := m.Dedupe([]wifi.AccessPoint{
		{SSID: "Cafe", BSSID: "01", Signal: -70},
		{SSID: "Cafe", BSSID: "02", Signal: -60},
	})
	assert.Equal(t, []wifi.AccessPoint{{SSID: "Cafe", BSSID: "01", Signal: -70}}, got)
}

func TestIsStrongest(t *testing.T) {
	m := Matcher{}
	assert.False(t, m.IsStrongest(homeSnapshot, homeSnapshot[0]))
	assert.True(t, m.IsStrongest(homeSnapshot, homeSnapshot[1]))
	assert.True(t, m.IsStrongest(homeSnapshot, homeSnapshot[2]))
}
