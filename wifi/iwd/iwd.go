//go:build linux

package iwd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/shazow/wifisearch/wifi"
)

// IWD constants
const (
	iwdDest              = "net.connman.iwd"
	iwdPath              = "/"
	iwdDeviceIface       = "net.connman.iwd.Device"
	iwdNetworkIface      = "net.connman.iwd.Network"
	iwdStationIface      = "net.connman.iwd.Station"
	iwdKnownNetworkIface = "net.connman.iwd.KnownNetwork"
	objectManagerIface   = "org.freedesktop.DBus.ObjectManager"
)

// managedObjects maps object paths to their interfaces and properties.
type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// orderedNetwork is one entry of Station.GetOrderedNetworks. Signal is in
// 100 * dBm.
type orderedNetwork struct {
	Path   dbus.ObjectPath
	Signal int16
}

// bus is the subset of iwd's D-Bus API the backend needs.
type bus interface {
	ManagedObjects() (managedObjects, error)
	Scan(station dbus.ObjectPath) error
	OrderedNetworks(station dbus.ObjectPath) ([]orderedNetwork, error)
}

type systemBus struct {
	conn *dbus.Conn
}

func (b systemBus) ManagedObjects() (managedObjects, error) {
	var objects managedObjects
	err := b.conn.Object(iwdDest, iwdPath).Call(objectManagerIface+".GetManagedObjects", 0).Store(&objects)
	return objects, err
}

func (b systemBus) Scan(station dbus.ObjectPath) error {
	return b.conn.Object(iwdDest, station).Call(iwdStationIface+".Scan", 0).Err
}

func (b systemBus) OrderedNetworks(station dbus.ObjectPath) ([]orderedNetwork, error) {
	var networks []orderedNetwork
	err := b.conn.Object(iwdDest, station).Call(iwdStationIface+".GetOrderedNetworks", 0).Store(&networks)
	return networks, err
}

// Backend implements wifi.Backend using iwd.
type Backend struct {
	bus    bus
	logger *slog.Logger
}

// connect opens the bus used by New.
var connect = func() (bus, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	return systemBus{conn: conn}, nil
}

// New creates a new iwd.Backend.
func New(logger *slog.Logger) (*Backend, error) {
	conn, err := connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w: %w", wifi.ErrNotAvailable, err)
	}
	b := &Backend{bus: conn, logger: logger}
	// Listing objects doubles as a check that iwd is running.
	if _, err := b.bus.ManagedObjects(); err != nil {
		return nil, fmt.Errorf("iwd is not available: %w: %w", wifi.ErrNotAvailable, err)
	}
	return b, nil
}

func (b *Backend) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// Scan asks every powered station to scan and returns the networks iwd
// orders for them. iwd reports one entry per network, carrying its best
// signal, so BSSID and frequency are unknown.
func (b *Backend) Scan() ([]wifi.AccessPoint, error) {
	objects, err := b.bus.ManagedObjects()
	if err != nil {
		return nil, err
	}

	stations := stationPaths(objects)
	if len(stations) == 0 {
		return nil, fmt.Errorf("no station device found: %w", wifi.ErrNotFound)
	}

	var aps []wifi.AccessPoint
	for _, station := range stations {
		// Best effort: iwd rejects a scan while one is already running.
		if err := b.bus.Scan(station); err != nil {
			b.log().Debug("scan request rejected", "station", station, "error", err)
		}
		networks, err := b.bus.OrderedNetworks(station)
		if err != nil {
			b.log().Warn("failed to list networks", "station", station, "error", err)
			continue
		}
		aps = append(aps, accessPoints(objects, networks)...)
	}
	return aps, nil
}

// SavedNetworks returns iwd's known networks.
func (b *Backend) SavedNetworks() ([]wifi.SavedNetwork, error) {
	objects, err := b.bus.ManagedObjects()
	if err != nil {
		return nil, err
	}
	return knownNetworks(objects), nil
}

// --- iwd Helper Functions ---

// sortedPaths returns the paths implementing iface, in a stable order.
func sortedPaths(objects managedObjects, iface string) []dbus.ObjectPath {
	var paths []dbus.ObjectPath
	for path, ifaces := range objects {
		if _, ok := ifaces[iface]; ok {
			paths = append(paths, path)
		}
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}

// stationPaths returns the station objects whose device is powered.
func stationPaths(objects managedObjects) []dbus.ObjectPath {
	var stations []dbus.ObjectPath
	for _, path := range sortedPaths(objects, iwdStationIface) {
		if device, ok := objects[path][iwdDeviceIface]; ok {
			if powered, ok := device["Powered"].Value().(bool); ok && !powered {
				continue
			}
		}
		stations = append(stations, path)
	}
	return stations
}

func accessPoints(objects managedObjects, networks []orderedNetwork) []wifi.AccessPoint {
	var aps []wifi.AccessPoint
	for _, n := range networks {
		props, ok := objects[n.Path][iwdNetworkIface]
		if !ok {
			continue
		}
		name, _ := props["Name"].Value().(string)
		aps = append(aps, wifi.AccessPoint{
			SSID:   name,
			Signal: int(n.Signal) / 100,
		})
	}
	return aps
}

func knownNetworks(objects managedObjects) []wifi.SavedNetwork {
	var nets []wifi.SavedNetwork
	for _, path := range sortedPaths(objects, iwdKnownNetworkIface) {
		props := objects[path][iwdKnownNetworkIface]
		n := wifi.SavedNetwork{ID: string(path)}
		n.SSID, _ = props["Name"].Value().(string)
		n.Hidden, _ = props["Hidden"].Value().(bool)
		n.AutoConnect, _ = props["AutoConnect"].Value().(bool)
		nets = append(nets, n)
	}
	return nets
}

// SignalRange reports iwd's dBm signal scale.
func (b *Backend) SignalRange() wifi.SignalRange {
	return wifi.RangeDBm
}
