// Package search finds access points and saved networks by SSID pattern.
//
// A Searcher pulls snapshots from a wifi.ScanProvider and a
// wifi.ProfileProvider and filters them with a Matcher. Provider failures are
// logged and treated as empty snapshots. Lookups that find nothing return nil,
// never an empty non-nil slice, and report errors only for invalid patterns
// and misuse.
package search

import (
	"errors"
	"log/slog"
	"time"

	"github.com/shazow/wifisearch/wifi"
)

var (
	ErrMissingPattern  = errors.New("missing pattern")
	ErrInvalidPattern  = errors.New("invalid pattern")
	ErrNegativeTimeout = errors.New("negative timeout")
)

// Searcher looks up networks through its providers. It holds no state
// between calls.
type Searcher struct {
	scanner  wifi.ScanProvider
	profiles wifi.ProfileProvider
	compare  wifi.SignalComparator
	clock    Clock
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithComparator sets how signal values are ranked.
func WithComparator(cmp wifi.SignalComparator) Option {
	return func(s *Searcher) {
		if cmp != nil {
			s.compare = cmp
		}
	}
}

// WithClock replaces the wall clock used while polling.
func WithClock(c Clock) Option {
	return func(s *Searcher) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithInterval sets the pause between scan passes while polling.
func WithInterval(d time.Duration) Option {
	return func(s *Searcher) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger for scan and match events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Searcher. Either provider may be nil, in which case lookups
// against it find nothing.
func New(scanner wifi.ScanProvider, profiles wifi.ProfileProvider, opts ...Option) *Searcher {
	s := &Searcher{
		scanner:  scanner,
		profiles: profiles,
		compare:  wifi.CompareSignal,
		clock:    wallClock{},
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) matcher(logger *slog.Logger) Matcher {
	return Matcher{Compare: s.compare, Logger: logger}
}

// compile returns a nil pattern without error for an empty expr.
func (s *Searcher) compile(expr string) (*Pattern, error) {
	if expr == "" {
		s.logger.Debug("no pattern given")
		return nil, nil
	}
	return Compile(expr)
}

func (s *Searcher) scan(logger *slog.Logger) []wifi.AccessPoint {
	if s.scanner == nil {
		return nil
	}
	aps, err := s.scanner.Scan()
	if err != nil {
		logger.Warn("scan failed", "error", err)
		return nil
	}
	return aps
}

func (s *Searcher) savedNetworks() []wifi.SavedNetwork {
	if s.profiles == nil {
		return nil
	}
	nets, err := s.profiles.SavedNetworks()
	if err != nil {
		s.logger.Warn("listing saved networks failed", "error", err)
		return nil
	}
	return nets
}

// FindAccessPoint scans and returns the first access point whose SSID
// matches pattern. With strongest set, only an access point with the
// strongest signal for its SSID qualifies.
func (s *Searcher) FindAccessPoint(pattern string, strongest bool) (*wifi.AccessPoint, error) {
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	return s.matcher(s.logger).FirstAccessPoint(s.scan(s.logger), p, strongest), nil
}

// FindAccessPoints scans and returns all access points whose SSID matches
// pattern.
func (s *Searcher) FindAccessPoints(pattern string, strongest bool) ([]wifi.AccessPoint, error) {
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	return s.matcher(s.logger).AccessPoints(s.scan(s.logger), p, strongest), nil
}

// FindSSIDs scans and returns the SSIDs of all access points matching
// pattern.
func (s *Searcher) FindSSIDs(pattern string, strongest bool) ([]string, error) {
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	return s.matcher(s.logger).SSIDs(s.scan(s.logger), p, strongest), nil
}

// FindSavedNetwork returns the first saved network whose SSID matches
// pattern.
func (s *Searcher) FindSavedNetwork(pattern string) (*wifi.SavedNetwork, error) {
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	return s.matcher(s.logger).FirstSavedNetwork(s.savedNetworks(), p), nil
}

// FindSavedNetworks returns all saved networks whose SSID matches pattern.
func (s *Searcher) FindSavedNetworks(pattern string) ([]wifi.SavedNetwork, error) {
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	return s.matcher(s.logger).SavedNetworks(s.savedNetworks(), p), nil
}

// FindSavedSSIDs returns the unquoted SSIDs of all saved networks matching
// pattern.
func (s *Searcher) FindSavedSSIDs(pattern string) ([]string, error) {
	p, err := s.compile(pattern)
	if p == nil {
		return nil, err
	}
	return s.matcher(s.logger).SavedSSIDs(s.savedNetworks(), p), nil
}

// IsSaved reports whether a saved network has exactly the given SSID.
// Regular expression characters in ssid have no special meaning.
func (s *Searcher) IsSaved(ssid string) bool {
	p := Literal(ssid)
	if p == nil {
		return false
	}
	return s.matcher(s.logger).FirstSavedNetwork(s.savedNetworks(), p) != nil
}

// NearbyAccessPoints scans and returns one access point per SSID, the one
// with the strongest signal.
func (s *Searcher) NearbyAccessPoints() []wifi.AccessPoint {
	return s.matcher(s.logger).Dedupe(s.scan(s.logger))
}
