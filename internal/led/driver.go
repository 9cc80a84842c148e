// Package led implements the LED service: sole owner of the hardware,
// reading alert intent from a file-backed control channel and
// publishing its own status. Grounded on
// original_source/device/led_failsafe_manager.py's three-strip beach
// sign manager.
package led

import (
	"fmt"

	"github.com/tomtom215/wavealert360/internal/logging"
)

// Strip identifies one of the three addressable LED strips, each
// dedicated to a single alert color per the original hardware layout.
type Strip string

const (
	StripRed    Strip = "red"
	StripYellow Strip = "yellow"
	StripGreen  Strip = "green"
)

var allStrips = [...]Strip{StripRed, StripYellow, StripGreen}

// Driver is the injectable hardware boundary: set every pixel on a
// strip to either fully lit (its dedicated color) or off.
type Driver interface {
	// SetStrip lights every pixel of strip if on, otherwise turns it
	// off. Must be safe to call repeatedly, including on a strip whose
	// hardware failed to initialize.
	SetStrip(strip Strip, on bool) error

	// Available reports whether real hardware was successfully
	// initialized. False means every call is a simulated no-op.
	Available() bool
}

// AllOff turns off every strip, logging but not failing on a
// per-strip error so a single bad strip doesn't block shutdown.
func AllOff(d Driver) {
	for _, s := range allStrips {
		if err := d.SetStrip(s, false); err != nil {
			logging.Warn().Err(err).Str("strip", string(s)).Msg("failed to turn off strip")
		}
	}
}

// SimulatedDriver is used whenever hardware initialization fails or
// Config.LED.Simulate is set; it logs intended strip state instead of
// driving GPIO. Never treated as a fatal condition.
type SimulatedDriver struct{}

// NewSimulatedDriver builds a no-hardware driver.
func NewSimulatedDriver() *SimulatedDriver { return &SimulatedDriver{} }

func (d *SimulatedDriver) Available() bool { return false }

func (d *SimulatedDriver) SetStrip(strip Strip, on bool) error {
	state := "OFF"
	if on {
		state = "ON"
	}
	logging.Debug().Str("strip", string(strip)).Str("state", state).Msg("simulated strip update")
	return nil
}

// newHardwareDriver is the build tag-less, platform-default driver
// constructor. A real rpi-ws281x-backed driver would live behind a
// build tag; none is wired in this module since no such Go library
// appears anywhere in the retrieved example pack (see DESIGN.md).
func newHardwareDriver(pixelCount int) (Driver, error) {
	return nil, fmt.Errorf("hardware driver not built into this binary, use simulation")
}
