// Package registry persists printer identities. A physical printer
// keeps the same ID and custom name across restarts and rescans, keyed
// by what the bus exposes (VID/PID, device path, or address).
package registry

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Registry maps device identities to stable IDs backed by a JSON file.
type Registry struct {
	filePath string
	entries  map[string]*Entry
	mu       sync.RWMutex
}

// Entry is one persisted device record.
type Entry struct {
	ID          string `json:"id"`
	IdentityKey string `json:"identity_key"`
	Type        string `json:"type"` // usb, serial, network
	VID         uint16 `json:"vid,omitempty"`
	PID         uint16 `json:"pid,omitempty"`
	Path        string `json:"path,omitempty"`
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
	Description string `json:"description"`
	Name        string `json:"name,omitempty"` // custom user-set name
}

// DeviceInfo is the identity a scan observed for one device.
type DeviceInfo struct {
	Type        string
	Description string
	Path        string
	VID         uint16
	PID         uint16
	Host        string
	Port        int
}

// New loads the registry at filePath, creating it lazily on first save.
func New(filePath string) (*Registry, error) {
	r := &Registry{
		filePath: filePath,
		entries:  make(map[string]*Entry),
	}
	if err := r.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return r, nil
}

// ID returns the stable ID for the observed device, minting and
// persisting a new one on first sight.
func (r *Registry) ID(info DeviceInfo) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identityKey(info)
	if entry, exists := r.entries[key]; exists {
		return entry.ID
	}

	entry := &Entry{
		ID:          uuid.New().String(),
		IdentityKey: key,
		Type:        info.Type,
		VID:         info.VID,
		PID:         info.PID,
		Path:        info.Path,
		Host:        info.Host,
		Port:        info.Port,
		Description: info.Description,
	}
	r.entries[key] = entry

	// Persistence failures are tolerated: the ID stays valid for this
	// process and will be re-minted next run.
	_ = r.save()

	return entry.ID
}

// Name returns the custom name for a device, or empty when unset.
func (r *Registry) Name(deviceID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.ID == deviceID {
			return entry.Name
		}
	}
	return ""
}

// SetName stores a custom name. It reports whether the device exists.
func (r *Registry) SetName(deviceID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.ID == deviceID {
			entry.Name = name
			_ = r.save()
			return true
		}
	}
	return false
}

// Info returns a copy of the persisted record, or nil if unknown.
func (r *Registry) Info(deviceID string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.ID == deviceID {
			cp := *entry
			return &cp
		}
	}
	return nil
}

// Remove forgets a device. It reports whether anything was removed.
func (r *Registry) Remove(deviceID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if entry.ID == deviceID {
			delete(r.entries, key)
			_ = r.save()
			return true
		}
	}
	return false
}

// All returns a copy of every persisted record.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		cp := *entry
		result = append(result, &cp)
	}
	return result
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &r.entries)
}

func (r *Registry) save() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath, data, 0o644)
}

// identityKey derives the lookup key from what the bus exposes. The
// description hash is a last resort for devices with no usable address.
func identityKey(info DeviceInfo) string {
	switch info.Type {
	case "usb":
		if info.VID != 0 && info.PID != 0 {
			return fmt.Sprintf("usb:%04X:%04X", info.VID, info.PID)
		}
	case "serial":
		if info.Path != "" {
			return "serial:" + info.Path
		}
	case "network":
		if info.Host != "" {
			return fmt.Sprintf("network:%s:%d", info.Host, info.Port)
		}
	}

	sum := sha256.Sum256([]byte(info.Description))
	return fmt.Sprintf("hash:%x", sum[:8])
}
