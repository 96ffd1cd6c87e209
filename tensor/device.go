// SPDX-License-Identifier: MIT

package tensor

import "fmt"

// DeviceType enumerates the placements an Array can have.
type DeviceType uint8

const (
	// CPU is ordinary host memory (optionally page-locked via Pin).
	CPU DeviceType = iota + 1
	// Accelerator is device memory of an attached accelerator.
	Accelerator
)

// Device identifies where an Array's buffer resides.
// Two devices are the same context iff both Type and ID match.
type Device struct {
	Type DeviceType
	ID   int
}

// Host is the default host-memory device.
var Host = Device{Type: CPU}

// AcceleratorDevice returns the accelerator with the given ordinal.
func AcceleratorDevice(id int) Device { return Device{Type: Accelerator, ID: id} }

// IsHost reports whether d is host memory.
func (d Device) IsHost() bool { return d.Type == CPU }

// String implements fmt.Stringer ("cpu:0", "accel:1").
func (d Device) String() string {
	switch d.Type {
	case CPU:
		return fmt.Sprintf("cpu:%d", d.ID)
	case Accelerator:
		return fmt.Sprintf("accel:%d", d.ID)
	default:
		return fmt.Sprintf("device(%d):%d", d.Type, d.ID)
	}
}

// PinOutcome is the explicit result of a pin/unpin request.
type PinOutcome uint8

const (
	// PinAlreadySatisfied means the buffer was already in the requested state.
	PinAlreadySatisfied PinOutcome = iota + 1
	// PinPerformed means the state changed.
	PinPerformed
)

// String implements fmt.Stringer.
func (o PinOutcome) String() string {
	switch o {
	case PinAlreadySatisfied:
		return "already-satisfied"
	case PinPerformed:
		return "performed"
	default:
		return "unknown"
	}
}
