package wifi

import (
	"io"
	"strings"
)

// AccessPoint is a single observed broadcast of a network. It is only valid
// for the scan that produced it.
type AccessPoint struct {
	SSID      string // Empty for hidden networks
	BSSID     string
	Signal    int  // Backend units, compare with a SignalComparator
	Frequency uint // MHz
}

// SavedNetwork is a persisted network profile, independent of whether it is
// currently visible.
type SavedNetwork struct {
	// SSID is the identifier as the backend reports it, which may be wrapped
	// in quotes.
	SSID        string
	ID          string
	AutoConnect bool
	Hidden      bool
}

// Name returns the SSID with quote characters removed.
func (n SavedNetwork) Name() string {
	return strings.ReplaceAll(n.SSID, `"`, "")
}

// ScanProvider triggers a scan and returns the resulting access points.
type ScanProvider interface {
	// Scan requests a fresh scan and returns the access points the backend
	// currently reports. The list may be empty.
	Scan() ([]AccessPoint, error)
}

// ProfileProvider returns the saved network profiles.
type ProfileProvider interface {
	SavedNetworks() ([]SavedNetwork, error)
}

// Backend provides both scan results and saved profiles.
type Backend interface {
	ScanProvider
	ProfileProvider
}

// NoProfiles is a ProfileProvider for backends that cannot list saved
// networks.
type NoProfiles struct{}

func (NoProfiles) SavedNetworks() ([]SavedNetwork, error) {
	return nil, ErrNotSupported
}

type scanOnly struct {
	ScanProvider
	NoProfiles
}

func (s scanOnly) SignalRange() SignalRange {
	return RangeOf(s.ScanProvider)
}

// Close closes the wrapped provider if it holds resources.
func (s scanOnly) Close() error {
	if c, ok := s.ScanProvider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ScanOnly wraps a ScanProvider into a Backend without saved networks.
func ScanOnly(p ScanProvider) Backend {
	return scanOnly{ScanProvider: p}
}
