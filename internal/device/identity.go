// Package device resolves the appliance's own identity, the opaque key
// every cloud alert lookup is keyed on.
package device

import (
	"fmt"
	"net"

	"github.com/tomtom215/wavealert360/internal/models"
)

// Identity returns the hardware address of preferredInterface, or of the
// first interface with a non-empty, non-loopback hardware address if
// preferredInterface is empty.
func Identity(preferredInterface string) (models.DeviceIdentity, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("list network interfaces: %w", err)
	}

	if preferredInterface != "" {
		for _, iface := range ifaces {
			if iface.Name == preferredInterface && len(iface.HardwareAddr) > 0 {
				return models.DeviceIdentity{MACAddress: iface.HardwareAddr.String()}, nil
			}
		}
		return models.DeviceIdentity{}, fmt.Errorf("interface %q not found or has no hardware address", preferredInterface)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		return models.DeviceIdentity{MACAddress: iface.HardwareAddr.String()}, nil
	}

	return models.DeviceIdentity{}, fmt.Errorf("no network interface with a hardware address found")
}
