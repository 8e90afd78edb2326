package printer

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/gousb"
	"github.com/tarm/serial"
	"go.uber.org/zap"

	"github.com/printcore/thermoprint/internal/registry"
)

// Manager discovers printers and keeps the live device list. Identity
// is delegated to the registry so a printer keeps its ID and custom
// name across restarts.
type Manager struct {
	registry *registry.Registry
	devices  map[string]*Device
	log      *zap.Logger
	mu       sync.RWMutex
}

// NewManager creates a manager backed by the registry file at path.
func NewManager(registryPath string, log *zap.Logger) (*Manager, error) {
	reg, err := registry.New(registryPath)
	if err != nil {
		return nil, fmt.Errorf("open device registry: %w", err)
	}
	return &Manager{
		registry: reg,
		devices:  make(map[string]*Device),
		log:      log,
	}, nil
}

// Detect scans USB and serial buses and replaces the live device list
// with what it finds. Manually added network printers survive the scan.
func (m *Manager) Detect() ([]*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var devices []*Device

	usbDevices, err := m.detectUSB()
	if err != nil {
		m.log.Warn("USB detection failed", zap.Error(err))
	} else {
		devices = append(devices, usbDevices...)
	}

	devices = append(devices, m.detectSerial()...)

	for _, d := range m.devices {
		if d.Type == "network" {
			devices = append(devices, d)
		}
	}

	m.devices = make(map[string]*Device, len(devices))
	for _, d := range devices {
		m.devices[d.ID] = d
	}

	m.log.Debug("device scan complete", zap.Int("devices", len(devices)))
	return devices, nil
}

// Get returns a device by ID, or nil if unknown.
func (m *Manager) Get(id string) *Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices[id]
}

// All returns the current device list.
func (m *Manager) All() []*Device {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Device, 0, len(m.devices))
	for _, d := range m.devices {
		result = append(result, d)
	}
	return result
}

// SetName stores a custom name for a device.
func (m *Manager) SetName(id, name string) bool {
	if !m.registry.SetName(id, name) {
		return false
	}
	m.mu.Lock()
	if d, exists := m.devices[id]; exists {
		d.Name = name
	}
	m.mu.Unlock()
	return true
}

// AddNetwork registers a network printer by address. Network printers
// cannot be discovered, so callers declare them.
func (m *Manager) AddNetwork(host string, port int, description string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if port == 0 {
		port = DefaultNetworkPort
	}
	if description == "" {
		description = fmt.Sprintf("Network: %s:%d", host, port)
	}

	id := m.registry.ID(registry.DeviceInfo{
		Type:        "network",
		Host:        host,
		Port:        port,
		Description: description,
	})

	m.devices[id] = &Device{
		ID:          id,
		Type:        "network",
		Description: description,
		Host:        host,
		Port:        port,
		Name:        m.registry.Name(id),
	}
	return id
}

// detectUSB lists printer-class USB devices. Devices are opened only
// to read descriptors, never claimed.
func (m *Manager) detectUSB() ([]*Device, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var devices []*Device

	found, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate USB devices: %w", err)
	}

	for _, dev := range found {
		desc := dev.Desc

		if !isPrinterClass(desc) {
			dev.Close()
			continue
		}

		manufacturer, _ := dev.Manufacturer()
		product, _ := dev.Product()

		description := fmt.Sprintf("USB: %04X:%04X", desc.Vendor, desc.Product)
		if manufacturer != "" || product != "" {
			description = fmt.Sprintf("USB: %s %s (%04X:%04X)",
				manufacturer, product, desc.Vendor, desc.Product)
		}

		id := m.registry.ID(registry.DeviceInfo{
			Type:        "usb",
			VID:         uint16(desc.Vendor),
			PID:         uint16(desc.Product),
			Description: description,
		})

		devices = append(devices, &Device{
			ID:          id,
			Type:        "usb",
			Description: description,
			VID:         uint16(desc.Vendor),
			PID:         uint16(desc.Product),
			Name:        m.registry.Name(id),
		})
		dev.Close()
	}

	return devices, nil
}

func isPrinterClass(desc *gousb.DeviceDesc) bool {
	if desc.Class == gousb.ClassPrinter {
		return true
	}
	for _, cfg := range desc.Configs {
		for _, iface := range cfg.Interfaces {
			for _, alt := range iface.AltSettings {
				if alt.Class == gousb.ClassPrinter {
					return true
				}
			}
		}
	}
	return false
}

// detectSerial probes candidate serial ports. Ports that cannot be
// opened are skipped silently; busy or absent ports are expected.
func (m *Manager) detectSerial() []*Device {
	var devices []*Device

	for _, portPath := range serialPortCandidates() {
		port, err := serial.OpenPort(&serial.Config{Name: portPath, Baud: DefaultBaudRate})
		if err != nil {
			continue
		}
		port.Close()

		description := fmt.Sprintf("Serial: %s", filepath.Base(portPath))
		id := m.registry.ID(registry.DeviceInfo{
			Type:        "serial",
			Path:        portPath,
			Description: description,
		})

		devices = append(devices, &Device{
			ID:          id,
			Type:        "serial",
			Description: description,
			Path:        portPath,
			Name:        m.registry.Name(id),
		})
	}

	return devices
}
