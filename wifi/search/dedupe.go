package search

import (
	"golang.org/x/text/cases"

	"github.com/shazow/wifisearch/wifi"
)

// foldSSID returns the key access points are grouped by. SSIDs that differ
// only in case belong to the same network.
func foldSSID(ssid string) string {
	return cases.Fold().String(ssid)
}

// IsStrongest reports whether no access point in aps with the same SSID as ap
// has a strictly stronger signal. Equal signal does not count as stronger.
func (m Matcher) IsStrongest(aps []wifi.AccessPoint, ap wifi.AccessPoint) bool {
	cmp := m.compare()
	key := foldSSID(ap.SSID)
	for _, other := range aps {
		if other.SSID == "" || foldSSID(other.SSID) != key {
			continue
		}
		if cmp(other.Signal, ap.Signal) > 0 {
			m.logger().Debug("stronger signal found",
				"ssid", ap.SSID,
				"signal", ap.Signal,
				"stronger_ssid", other.SSID,
				"stronger_signal", other.Signal,
			)
			return false
		}
	}
	return true
}

// Dedupe collapses aps into one access point per SSID, keeping the strongest.
// Each network keeps the position it first appeared at. Access points without
// an SSID are dropped. It returns nil for an empty result.
func (m Matcher) Dedupe(aps []wifi.AccessPoint) []wifi.AccessPoint {
	cmp := m.compare()
	var result []wifi.AccessPoint
	index := make(map[string]int)
	for _, ap := range aps {
		if ap.SSID == "" {
			continue
		}
		key := foldSSID(ap.SSID)
		i, ok := index[key]
		if !ok {
			index[key] = len(result)
			result = append(result, ap)
			continue
		}
		if cmp(ap.Signal, result[i].Signal) > 0 {
			m.logger().Debug("replacing weaker access point",
				"ssid", ap.SSID,
				"signal", ap.Signal,
				"replaced_ssid", result[i].SSID,
				"replaced_signal", result[i].Signal,
			)
			result[i] = ap
		}
	}
	return result
}
