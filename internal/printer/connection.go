// Package printer delivers rendered ESC/POS byte streams to thermal
// printers over USB, serial, or TCP. Rendering happens upstream; this
// package only moves bytes and tracks delivery.
package printer

import (
	"fmt"
	"runtime"
	"sync"
)

// Connection is a write-only channel to one physical printer. The byte
// stream is passed through untouched; no command translation happens at
// this layer.
type Connection interface {
	Write(data []byte) (int, error)
	Close() error
}

// Device describes one reachable printer.
type Device struct {
	ID          string
	Type        string // usb, serial, network
	Description string
	Path        string // serial device path
	VID         uint16
	PID         uint16
	Host        string
	Port        int
	Name        string // custom user-set name
}

// Pool holds open connections keyed by device ID. Connections are
// opened lazily and reused across jobs.
type Pool struct {
	conns map[string]Connection
	mu    sync.RWMutex
}

// NewPool creates an empty connection pool.
func NewPool() *Pool {
	return &Pool{conns: make(map[string]Connection)}
}

// Connect opens a connection for the device unless one is already held.
func (p *Pool) Connect(dev *Device) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.conns[dev.ID]; exists {
		return nil
	}

	var conn Connection
	var err error

	switch dev.Type {
	case "usb":
		conn, err = ConnectUSB(dev.VID, dev.PID)
		// macOS often exposes USB printers as serial devices once a
		// driver claims them; fall back to serial probing there.
		if err != nil && runtime.GOOS == "darwin" {
			for _, port := range serialPortCandidates() {
				if sc, serr := ConnectSerial(port, 0); serr == nil {
					conn, err = sc, nil
					break
				}
			}
		}
	case "serial":
		conn, err = ConnectSerial(dev.Path, 0)
	case "network":
		conn, err = ConnectNetwork(dev.Host, dev.Port)
	default:
		return fmt.Errorf("unsupported device type: %s", dev.Type)
	}

	if err != nil {
		return err
	}

	p.conns[dev.ID] = conn
	return nil
}

// Send writes one rendered receipt to a connected device.
func (p *Pool) Send(deviceID string, data []byte) error {
	p.mu.RLock()
	conn, exists := p.conns[deviceID]
	p.mu.RUnlock()

	if !exists {
		return fmt.Errorf("device not connected: %s", deviceID)
	}

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("write to device %s: %w", deviceID, err)
	}
	return nil
}

// Disconnect closes and drops one connection. Unknown IDs are no-ops.
func (p *Pool) Disconnect(deviceID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, exists := p.conns[deviceID]
	if !exists {
		return nil
	}
	err := conn.Close()
	delete(p.conns, deviceID)
	return err
}

// DisconnectAll closes every held connection.
func (p *Pool) DisconnectAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, conn := range p.conns {
		conn.Close()
		delete(p.conns, id)
	}
}

// IsConnected reports whether a connection is held for the device.
func (p *Pool) IsConnected(deviceID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, exists := p.conns[deviceID]
	return exists
}
