package printer

import (
	"fmt"
	"sync"

	"github.com/google/gousb"
)

// USBConnection is a printer driven directly over libusb bulk
// transfers.
type USBConnection struct {
	ctx      *gousb.Context
	device   *gousb.Device
	iface    *gousb.Interface
	endpoint *gousb.OutEndpoint
	mu       sync.Mutex
}

// ConnectUSB opens the device with the given vendor and product ID and
// claims the first interface exposing an OUT endpoint. Most printers
// answer on the default interface; the config walk covers the rest.
func ConnectUSB(vid, pid uint16) (*USBConnection, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("open USB device %04X:%04X: %w", vid, pid, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("USB device not found: %04X:%04X", vid, pid)
	}

	iface, _, err := dev.DefaultInterface()
	if err != nil {
		// The kernel may hold the interface; detach and retry once.
		dev.SetAutoDetach(true)
		iface, _, err = dev.DefaultInterface()
	}
	if err == nil {
		if ep := findOutEndpoint(iface); ep != nil {
			return &USBConnection{ctx: ctx, device: dev, iface: iface, endpoint: ep}, nil
		}
		iface.Close()
	}

	// Default interface has no OUT endpoint; walk every configuration.
	for _, cfgDesc := range dev.Desc.Configs {
		cfg, err := dev.Config(cfgDesc.Number)
		if err != nil {
			continue
		}
		for _, ifaceDesc := range cfgDesc.Interfaces {
			iface, err := cfg.Interface(ifaceDesc.Number, 0)
			if err != nil {
				continue
			}
			if ep := findOutEndpoint(iface); ep != nil {
				return &USBConnection{ctx: ctx, device: dev, iface: iface, endpoint: ep}, nil
			}
			iface.Close()
		}
		cfg.Close()
	}

	dev.Close()
	ctx.Close()
	return nil, fmt.Errorf("no OUT endpoint on USB device %04X:%04X", vid, pid)
}

func findOutEndpoint(iface *gousb.Interface) *gousb.OutEndpoint {
	for _, epDesc := range iface.Setting.Endpoints {
		if epDesc.Direction == gousb.EndpointDirectionOut {
			if ep, err := iface.OutEndpoint(epDesc.Number); err == nil {
				return ep
			}
		}
	}
	return nil
}

func (c *USBConnection) Write(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint.Write(data)
}

func (c *USBConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.iface != nil {
		c.iface.Close()
	}
	if c.device != nil {
		c.device.Close()
	}
	if c.ctx != nil {
		return c.ctx.Close()
	}
	return nil
}
