package search

import (
	"log/slog"

	"github.com/shazow/wifisearch/wifi"
)

// Matcher filters snapshots of access points and saved networks. It keeps no
// state between calls, and the zero value ranks signal with
// wifi.CompareSignal and logs nothing.
type Matcher struct {
	Compare wifi.SignalComparator
	Logger  *slog.Logger
}

func (m Matcher) compare() wifi.SignalComparator {
	if m.Compare == nil {
		return wifi.CompareSignal
	}
	return m.Compare
}

func (m Matcher) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}

// matchAccessPoint reports whether aps[i] is selected by p. With strongest
// set, the access point must also have the strongest signal among all access
// points sharing its SSID.
func (m Matcher) matchAccessPoint(aps []wifi.AccessPoint, i int, p *Pattern, strongest bool) bool {
	ap := aps[i]
	if ap.SSID == "" || !p.Match(ap.SSID) {
		return false
	}
	m.logger().Debug("ssid matched", "ssid", ap.SSID, "pattern", p.String())
	return !strongest || m.IsStrongest(aps, ap)
}

// FirstAccessPoint returns the first access point in snapshot order whose SSID
// matches p, or nil if there is none.
func (m Matcher) FirstAccessPoint(aps []wifi.AccessPoint, p *Pattern, strongest bool) *wifi.AccessPoint {
	if p == nil {
		return nil
	}
	for i := range aps {
		if m.matchAccessPoint(aps, i, p, strongest) {
			ap := aps[i]
			return &ap
		}
	}
	return nil
}

// AccessPoints returns every access point whose SSID matches p, in snapshot
// order. It returns nil when nothing matches.
func (m Matcher) AccessPoints(aps []wifi.AccessPoint, p *Pattern, strongest bool) []wifi.AccessPoint {
	if p == nil {
		return nil
	}
	var matched []wifi.AccessPoint
	for i := range aps {
		if m.matchAccessPoint(aps, i, p, strongest) {
			matched = append(matched, aps[i])
		}
	}
	return matched
}

// SSIDs is AccessPoints projected onto the SSIDs.
func (m Matcher) SSIDs(aps []wifi.AccessPoint, p *Pattern, strongest bool) []string {
	var ssids []string
	for _, ap := range m.AccessPoints(aps, p, strongest) {
		ssids = append(ssids, ap.SSID)
	}
	return ssids
}

func (m Matcher) matchSavedNetwork(n wifi.SavedNetwork, p *Pattern) bool {
	name := n.Name()
	if name == "" {
		return false
	}
	m.logger().Debug("checking saved network", "ssid", name, "pattern", p.String())
	return p.Match(name)
}

// FirstSavedNetwork returns the first saved network whose unquoted SSID
// matches p, or nil.
func (m Matcher) FirstSavedNetwork(nets []wifi.SavedNetwork, p *Pattern) *wifi.SavedNetwork {
	if p == nil {
		return nil
	}
	for _, n := range nets {
		if m.matchSavedNetwork(n, p) {
			return &n
		}
	}
	return nil
}

// SavedNetworks returns every saved network whose unquoted SSID matches p. It
// returns nil when nothing matches.
func (m Matcher) SavedNetworks(nets []wifi.SavedNetwork, p *Pattern) []wifi.SavedNetwork {
	if p == nil {
		return nil
	}
	var matched []wifi.SavedNetwork
	for _, n := range nets {
		if m.matchSavedNetwork(n, p) {
			matched = append(matched, n)
		}
	}
	return matched
}

// SavedSSIDs is SavedNetworks projected onto the unquoted SSIDs.
func (m Matcher) SavedSSIDs(nets []wifi.SavedNetwork, p *Pattern) []string {
	var ssids []string
	for _, n := range m.SavedNetworks(nets, p) {
		ssids = append(ssids, n.Name())
	}
	return ssids
}
