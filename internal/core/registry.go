package core

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// DeviceStatus is the reachability status reported by the discovery backend.
type DeviceStatus string

const (
	DeviceOnline  DeviceStatus = "online"
	DeviceBusy    DeviceStatus = "busy"
	DeviceOffline DeviceStatus = "offline"
)

// Device is one discovered peer. Devices are replaced wholesale on each
// successful scan and never mutated field-by-field.
type Device struct {
	ID     string
	Name   string
	Addr   string
	Status DeviceStatus
}

// DeviceRegistry owns the set of currently discovered devices. Only the
// DiscoveryController writes to it.
type DeviceRegistry struct {
	mu      sync.Mutex
	devices []Device
	notify  func()
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{notify: func() {}}
}

// SetNotify installs the change-notification callback. Must be called before
// the registry is shared.
func (r *DeviceRegistry) SetNotify(fn func()) {
	if fn != nil {
		r.notify = fn
	}
}

// Replace swaps in a new device set, sorted by display name.
func (r *DeviceRegistry) Replace(devices []Device) {
	r.mu.Lock()
	r.devices = make([]Device, len(devices))
	copy(r.devices, devices)
	sort.Slice(r.devices, func(i, j int) bool {
		return r.devices[i].Name < r.devices[j].Name
	})
	r.mu.Unlock()
	r.notify()
}

// Clear empties the registry.
func (r *DeviceRegistry) Clear() {
	r.mu.Lock()
	r.devices = nil
	r.mu.Unlock()
	r.notify()
}

// Devices returns a snapshot copy sorted by display name.
func (r *DeviceRegistry) Devices() []Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

func (r *DeviceRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}

// Get looks up a device by id.
func (r *DeviceRegistry) Get(id string) (Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.devices {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}

// Closest returns the device whose name is nearest the query by edit
// distance, for the receiver quick-jump. Matching is case-insensitive and a
// name containing the query outranks pure distance.
func (r *DeviceRegistry) Closest(query string) (Device, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Device{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	best := -1
	bestDist := 0
	for i, d := range r.devices {
		name := strings.ToLower(d.Name)
		dist := levenshtein.ComputeDistance(name, query)
		if strings.Contains(name, query) {
			dist = 0
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best == -1 {
		return Device{}, false
	}
	return r.devices[best], true
}
