package printer

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tarm/serial"
)

// DefaultBaudRate suits most thermal printers out of the box.
const DefaultBaudRate = 9600

// SerialConnection is a printer attached to a serial or USB-serial port.
type SerialConnection struct {
	port *serial.Port
	mu   sync.Mutex
}

// ConnectSerial opens a serial port. A zero baud rate selects the
// default.
func ConnectSerial(device string, baud int) (*SerialConnection, error) {
	if baud == 0 {
		baud = DefaultBaudRate
	}

	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return &SerialConnection{port: port}, nil
}

func (c *SerialConnection) Write(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port.Write(data)
}

func (c *SerialConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

// serialPortCandidates lists device paths that could plausibly be a
// printer on this platform. Bluetooth and modem endpoints are skipped
// on macOS.
func serialPortCandidates() []string {
	var ports []string

	switch runtime.GOOS {
	case "darwin":
		skip := []string{"Bluetooth", "Modem", "SPP", "DialIn", "Callout", "KeySerial", "debug-console"}
		cuPorts, _ := filepath.Glob("/dev/cu.*")
		ttyPorts, _ := filepath.Glob("/dev/tty.*")
		for _, port := range append(cuPorts, ttyPorts...) {
			skipped := false
			for _, pattern := range skip {
				if strings.Contains(port, pattern) {
					skipped = true
					break
				}
			}
			if !skipped {
				ports = append(ports, port)
			}
		}
	case "linux":
		usbPorts, _ := filepath.Glob("/dev/ttyUSB*")
		acmPorts, _ := filepath.Glob("/dev/ttyACM*")
		ports = append(ports, usbPorts...)
		ports = append(ports, acmPorts...)
	case "windows":
		for i := 1; i <= 16; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
	}

	return ports
}
