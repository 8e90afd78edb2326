package printer

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultNetworkPort is the raw-socket port most ESC/POS printers
// listen on.
const DefaultNetworkPort = 9100

// NetworkConnection is a printer reached over a raw TCP socket.
type NetworkConnection struct {
	conn net.Conn
	mu   sync.Mutex
}

// ConnectNetwork dials the printer. A zero port selects the default.
func ConnectNetwork(host string, port int) (*NetworkConnection, error) {
	if port == 0 {
		port = DefaultNetworkPort
	}
	address := fmt.Sprintf("%s:%d", host, port)

	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial printer %s: %w", address, err)
	}
	return &NetworkConnection{conn: conn}, nil
}

func (c *NetworkConnection) Write(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(data)
}

func (c *NetworkConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
