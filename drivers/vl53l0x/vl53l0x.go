// Package vl53l0x provides a minimal driver for the VL53L0X time-of-flight
// distance sensor, exposing one single-shot ranging cycle:
//
//	d.StartRanging()          // kick off one measurement
//	ok, _ := d.DataReady()    // poll until the result latches
//	mm, _ := d.ReadRange()    // fetch the range in millimetres
//	d.ClearInterrupt()        // release the result latch
//
// For convenience, d.Read() performs the full cycle with a bounded wait; a
// sensor that never reports ready yields ErrTimeout instead of hanging the
// caller.
package vl53l0x

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x29

// Registers used by the single-shot path.
const (
	regSysrangeStart         = 0x00
	regSystemInterruptClear  = 0x0B
	regResultInterruptStatus = 0x13
	regResultRange           = 0x14
	regModelID               = 0xC0
)

// Expected contents of regModelID.
const modelID = 0xEE

// Errors returned by the driver.
var (
	ErrWrongChip = errors.New("vl53l0x: unexpected model id")
	ErrTimeout   = errors.New("vl53l0x: ranging timeout")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x29 if zero.
	Address uint16
	// PollInterval is used by Read() between DataReady() attempts.
	// Default 5 ms.
	PollInterval time.Duration
	// RangeTimeout bounds the total wait in Read(). Default 100 ms.
	RangeTimeout time.Duration
}

// Device wraps an I2C connection to a VL53L0X. The I2C bus must already be
// configured.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg Config
	w   [2]byte
	r   [2]byte
}

// New creates a new VL53L0X connection. It does not touch the device.
func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Millisecond
	}
	if cfg.RangeTimeout <= 0 {
		cfg.RangeTimeout = 100 * time.Millisecond
	}
	return &Device{bus: bus, Address: cfg.Address, cfg: cfg}
}

// Configure verifies chip identity and leaves the device idle. A missing or
// unresponsive sensor surfaces as the underlying bus error.
func (d *Device) Configure() error {
	id, err := d.readReg(regModelID)
	if err != nil {
		return err
	}
	if id != modelID {
		return ErrWrongChip
	}
	// Make sure no stale measurement is latched from a previous run.
	return d.ClearInterrupt()
}

// StartRanging begins one single-shot measurement. The start bit self-clears
// once the measurement is underway.
func (d *Device) StartRanging() error {
	return d.writeReg(regSysrangeStart, 0x01)
}

// DataReady reports whether a measurement result is latched.
func (d *Device) DataReady() (bool, error) {
	v, err := d.readReg(regResultInterruptStatus)
	if err != nil {
		return false, err
	}
	return v&0x07 != 0, nil
}

// ReadRange returns the latched range in millimetres.
func (d *Device) ReadRange() (uint16, error) {
	// Range lives in the two high bytes at offset 10 of the result block.
	d.w[0] = regResultRange + 10
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:2]); err != nil {
		return 0, err
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}

// ClearInterrupt releases the result latch so the next cycle can complete.
func (d *Device) ClearInterrupt() error {
	return d.writeReg(regSystemInterruptClear, 0x01)
}

// StopRanging aborts an in-flight measurement.
func (d *Device) StopRanging() error {
	return d.writeReg(regSysrangeStart, 0x00)
}

// Read performs one full ranging cycle: start, bounded poll until the result
// is ready, fetch, clear. ErrTimeout is returned if the sensor never reports
// ready within RangeTimeout.
func (d *Device) Read() (uint16, error) {
	if err := d.StartRanging(); err != nil {
		return 0, err
	}
	deadline := time.Now().Add(d.cfg.RangeTimeout)
	for {
		ready, err := d.DataReady()
		if err != nil {
			return 0, err
		}
		if ready {
			break
		}
		if time.Now().After(deadline) {
			_ = d.StopRanging()
			return 0, ErrTimeout
		}
		time.Sleep(d.cfg.PollInterval)
	}
	mm, err := d.ReadRange()
	if err != nil {
		return 0, err
	}
	if err := d.ClearInterrupt(); err != nil {
		return 0, err
	}
	return mm, nil
}

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.bus.Tx(d.Address, d.w[:2], nil)
}
