// services/bringup/types.go
package bringup

import "time"

// Health is the per-device health registry. It is written only by the
// initialization sequencer and the power-cycle self-test, and read by the
// sampling loop as a gate. Execution is single-threaded, so no locking.
type Health struct {
	DistanceOnline bool
	AccelOnline    bool
	// CarrierOnline is derived: true only when both the non-volatile store
	// integrity check and RTC detection passed.
	CarrierOnline bool
}

// latch is the one-shot state machine guarding the power-cycle self-test.
// armed -> fired is the only legal transition.
type latch uint8

const (
	latchArmed latch = iota
	latchFired
)

// Prober performs one zero-length addressed transaction. A nil return means
// the address acknowledged; errcode.NoAck means no device; errcode.BusFault
// means a stuck or mis-driven bus line. Unclassified errors are treated as
// no-ack by the scanner.
type Prober interface {
	ProbeAddress(addr uint16) error
}

// PowerSwitch gates the sensor sub-board supply rail. Polarity inversion
// (the reference wiring is active low) belongs to the implementation.
type PowerSwitch interface {
	SetEnabled(on bool)
}

// DistanceSensor is the bring-up view of the time-of-flight sensor.
type DistanceSensor interface {
	Configure() error
	// Read performs one bounded ranging cycle and returns millimetres.
	Read() (uint16, error)
}

// Accelerometer is the bring-up view of the three-axis accelerometer.
type Accelerometer interface {
	Configure() error
	// ReadAcceleration returns one sample in milli-g.
	ReadAcceleration() (x, y, z int32, err error)
}

// RTCWatchdog is the bring-up view of the carrier's RTC/watchdog chip.
type RTCWatchdog interface {
	Configure() error
	SetWatchdogTimeout(period time.Duration) error
	Detect() bool
	Feed() error
}

// Store is the bring-up view of the byte-addressable non-volatile store.
type Store interface {
	Configure() error
	ReadByte(memaddr uint16) (byte, error)
	WriteByte(memaddr uint16, val byte) error
	Erase() error
}

// Devices bundles every external collaborator the harness drives.
type Devices struct {
	Probe    Prober
	Power    PowerSwitch
	Distance DistanceSensor
	Accel    Accelerometer
	RTC      RTCWatchdog
	Store    Store
}
