// Package mb85rc provides a minimal driver for MB85RC-series i2c FRAM
// (default geometry MB85RC256V, 32 KiB). FRAM writes complete within the bus
// transaction, so there is no write-cycle polling.
package mb85rc

import (
	"errors"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x50

// DefaultSize is the MB85RC256V capacity in bytes.
const DefaultSize = 32 * 1024

var ErrOutOfRange = errors.New("mb85rc: address out of range")

// Config controls addressing and geometry. All fields are optional.
type Config struct {
	// Address defaults to 0x50 if zero.
	Address uint16
	// Size defaults to 32 KiB if zero.
	Size uint32
}

// Device wraps an I2C connection to an MB85RC FRAM.
type Device struct {
	bus     drivers.I2C
	Address uint16

	size uint32
	w    [3]byte
	r    [1]byte
}

// New creates a new FRAM connection. It does not touch the device.
func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	return &Device{bus: bus, Address: cfg.Address, size: cfg.Size}
}

// Size returns the device capacity in bytes.
func (d *Device) Size() uint32 { return d.size }

// Configure probes the device with a one-byte read at address zero.
func (d *Device) Configure() error {
	_, err := d.ReadByte(0x0000)
	return err
}

// ReadByte reads one byte from the given memory address.
func (d *Device) ReadByte(memaddr uint16) (byte, error) {
	if uint32(memaddr) >= d.size {
		return 0, ErrOutOfRange
	}
	d.w[0] = byte(memaddr >> 8)
	d.w[1] = byte(memaddr)
	if err := d.bus.Tx(d.Address, d.w[:2], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// WriteByte writes one byte to the given memory address.
func (d *Device) WriteByte(memaddr uint16, val byte) error {
	if uint32(memaddr) >= d.size {
		return ErrOutOfRange
	}
	d.w[0] = byte(memaddr >> 8)
	d.w[1] = byte(memaddr)
	d.w[2] = val
	return d.bus.Tx(d.Address, d.w[:3], nil)
}

// Read fills buf starting at the given memory address. The device
// auto-increments its address latch across the sequential read.
func (d *Device) Read(memaddr uint16, buf []byte) error {
	if uint32(memaddr)+uint32(len(buf)) > d.size {
		return ErrOutOfRange
	}
	d.w[0] = byte(memaddr >> 8)
	d.w[1] = byte(memaddr)
	return d.bus.Tx(d.Address, d.w[:2], buf)
}

// Write stores buf starting at the given memory address in one transaction.
func (d *Device) Write(memaddr uint16, buf []byte) error {
	if uint32(memaddr)+uint32(len(buf)) > d.size {
		return ErrOutOfRange
	}
	out := make([]byte, 0, len(buf)+2)
	out = append(out, byte(memaddr>>8), byte(memaddr))
	out = append(out, buf...)
	return d.bus.Tx(d.Address, out, nil)
}

// Erase zeroes the whole device in 32-byte chunks.
func (d *Device) Erase() error {
	var zeros [32]byte
	for off := uint32(0); off < d.size; off += uint32(len(zeros)) {
		n := d.size - off
		if n > uint32(len(zeros)) {
			n = uint32(len(zeros))
		}
		if err := d.Write(uint16(off), zeros[:n]); err != nil {
			return err
		}
	}
	return nil
}
