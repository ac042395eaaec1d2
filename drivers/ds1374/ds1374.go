// Package ds1374 provides a minimal driver for the DS1374 binary counter
// RTC with integrated watchdog. The watchdog counts down a 24-bit value at
// 4096 Hz and asserts reset when it reaches zero; Feed reloads the counter.
package ds1374

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x68

// Registers.
const (
	regTOD0    = 0x00 // 32-bit seconds counter, little-endian
	regWDALM0  = 0x04 // 24-bit watchdog/alarm counter, little-endian
	regControl = 0x07
	regStatus  = 0x08
)

// Control register bits.
const (
	ctlEOSC  = 1 << 7 // oscillator disable (active high)
	ctlWACE  = 1 << 6 // watchdog/alarm counter enable
	ctlWDALM = 1 << 5 // counter mode: 1 = watchdog
	ctlWDSTR = 1 << 4 // watchdog reset steering
)

// Watchdog tick rate and the longest representable timeout (~68 minutes).
const tickHz = 4096

const MaxTimeout = time.Duration(0xFFFFFF) * time.Second / tickHz

var ErrTimeoutRange = errors.New("ds1374: watchdog timeout out of range")

// Config controls addressing only.
type Config struct {
	// Address defaults to 0x68 if zero.
	Address uint16
}

// Device wraps an I2C connection to a DS1374.
type Device struct {
	bus     drivers.I2C
	Address uint16

	ticks uint32 // last armed watchdog reload value
	w     [4]byte
	r     [4]byte
}

// New creates a new DS1374 connection. It does not touch the device.
func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	return &Device{bus: bus, Address: cfg.Address}
}

// Configure enables the oscillator, leaving other control bits untouched.
func (d *Device) Configure() error {
	ctl, err := d.readReg(regControl)
	if err != nil {
		return err
	}
	if ctl&ctlEOSC != 0 {
		return d.writeReg(regControl, ctl&^ctlEOSC)
	}
	return nil
}

// Detect reports chip presence by reading the status register.
func (d *Device) Detect() bool {
	_, err := d.readReg(regStatus)
	return err == nil
}

// SetWatchdogTimeout arms the watchdog with the given period. The period is
// quantised up to whole 4096 Hz ticks so the armed timeout is never shorter
// than requested; zero or beyond-range periods are rejected.
func (d *Device) SetWatchdogTimeout(period time.Duration) error {
	if period <= 0 || period > MaxTimeout {
		return ErrTimeoutRange
	}
	ticks := uint32((period*tickHz + time.Second - 1) / time.Second)
	if ticks == 0 || ticks > 0xFFFFFF {
		return ErrTimeoutRange
	}
	if err := d.writeCounter(ticks); err != nil {
		return err
	}
	d.ticks = ticks

	ctl, err := d.readReg(regControl)
	if err != nil {
		return err
	}
	return d.writeReg(regControl, ctl|ctlWACE|ctlWDALM|ctlWDSTR)
}

// Feed reloads the watchdog counter with the armed value. Writing the
// counter registers restarts the countdown.
func (d *Device) Feed() error {
	if d.ticks == 0 {
		return nil // watchdog never armed
	}
	return d.writeCounter(d.ticks)
}

// ReadTime returns the 32-bit seconds counter.
func (d *Device) ReadTime() (uint32, error) {
	d.w[0] = regTOD0
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:4]); err != nil {
		return 0, err
	}
	return uint32(d.r[0]) | uint32(d.r[1])<<8 | uint32(d.r[2])<<16 | uint32(d.r[3])<<24, nil
}

func (d *Device) writeCounter(ticks uint32) error {
	d.w[0] = regWDALM0
	d.w[1] = byte(ticks)
	d.w[2] = byte(ticks >> 8)
	d.w[3] = byte(ticks >> 16)
	return d.bus.Tx(d.Address, d.w[:4], nil)
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
