package wifi

import "sort"

// SortAccessPoints sorts access points in place for display.
// The sorting order is:
// 1. Stronger signal first, as ranked by cmp.
// 2. Named networks before hidden ones.
// 3. Fallback to SSID alphabetically, then BSSID.
func SortAccessPoints(aps []AccessPoint, cmp SignalComparator) {
	if cmp == nil {
		cmp = CompareSignal
	}
	sort.SliceStable(aps, func(i, j int) bool {
		a := aps[i]
		b := aps[j]

		if c := cmp(a.Signal, b.Signal); c != 0 {
			return c > 0
		}

		if (a.SSID == "") != (b.SSID == "") {
			return a.SSID != ""
		}

		if a.SSID != b.SSID {
			return a.SSID < b.SSID
		}
		return a.BSSID < b.BSSID
	})
}
