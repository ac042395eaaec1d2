// Package msa301 provides a minimal driver for the MSA301 three-axis
// accelerometer. Configure applies a fixed sampling profile (normal power,
// 125 Hz output data rate, ±2 g); ReadAcceleration returns signed milli-g.
package msa301

import (
	"errors"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x62

// Registers.
const (
	regPartID = 0x01
	regOutXL  = 0x02
	regRange  = 0x0F
	regODR    = 0x10
	regPower  = 0x11
)

// Expected contents of regPartID.
const partID = 0x13

// Profile values written by Configure.
const (
	rangeTwoG   = 0x00 // ±2 g
	odr125Hz    = 0x07 // all axes enabled (bits 7:5 zero), 125 Hz
	powerNormal = 0x1A // normal mode, 250 Hz bandwidth
	countsPerG  = 4096 // 14-bit output at ±2 g
)

var ErrWrongChip = errors.New("msa301: unexpected part id")

// Config controls addressing only; the sampling profile is fixed.
type Config struct {
	// Address defaults to 0x62 if zero.
	Address uint16
}

// Device wraps an I2C connection to an MSA301.
type Device struct {
	bus     drivers.I2C
	Address uint16

	w [2]byte
	r [6]byte
}

// New creates a new MSA301 connection. It does not touch the device.
func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	return &Device{bus: bus, Address: cfg.Address}
}

// Configure verifies chip identity and applies the fixed sampling profile.
func (d *Device) Configure() error {
	id, err := d.readReg(regPartID)
	if err != nil {
		return err
	}
	if id != partID {
		return ErrWrongChip
	}
	if err := d.writeReg(regRange, rangeTwoG); err != nil {
		return err
	}
	if err := d.writeReg(regODR, odr125Hz); err != nil {
		return err
	}
	return d.writeReg(regPower, powerNormal)
}

// ReadAcceleration returns the three axes in milli-g. The output registers
// hold 14-bit left-justified two's-complement values.
func (d *Device) ReadAcceleration() (x, y, z int32, err error) {
	d.w[0] = regOutXL
	if err = d.bus.Tx(d.Address, d.w[:1], d.r[:6]); err != nil {
		return 0, 0, 0, err
	}
	x = toMilliG(d.r[0], d.r[1])
	y = toMilliG(d.r[2], d.r[3])
	z = toMilliG(d.r[4], d.r[5])
	return x, y, z, nil
}

func toMilliG(lo, hi byte) int32 {
	counts := int32(int16(uint16(lo)|uint16(hi)<<8)) / 4 // drop the unused low bits
	return counts * 1000 / countsPerG
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
