// services/bringup/scan.go
package bringup

import (
	"carriercode-go/errcode"
	"carriercode-go/x/conv"
)

// Valid 7-bit address window probed by a scan.
const (
	scanAddrFirst = 0x01
	scanAddrLast  = 0x7E
)

// scanReportCap bounds the report, not the bus: a scan stops early once the
// report is full.
const scanReportCap = 9

// ScanResult is an ordered list of acknowledging addresses, or a terminal
// bus fault, which is distinct from "zero devices found".
type ScanResult struct {
	Addrs     []uint16
	Fault     bool
	FaultAddr uint16
	Truncated bool
}

// Count returns the number of discovered addresses.
func (r ScanResult) Count() int { return len(r.Addrs) }

// Scan probes every valid address in ascending order. No-ack means no
// device; a bus fault aborts immediately so a wedged bus is never reported
// as a partial device list. Scan performs no device initialization.
func Scan(p Prober) ScanResult {
	var r ScanResult
	for addr := uint16(scanAddrFirst); addr <= scanAddrLast; addr++ {
		err := p.ProbeAddress(addr)
		switch errcode.Of(err) {
		case errcode.OK:
			r.Addrs = append(r.Addrs, addr)
			if len(r.Addrs) == scanReportCap {
				r.Truncated = addr < scanAddrLast
				return r
			}
		case errcode.BusFault:
			r.Fault = true
			r.FaultAddr = addr
			return r
		default:
			// No device at this address.
		}
	}
	return r
}

// Report renders the one-line, mutually exclusive scan summary.
func (r ScanResult) Report() string {
	if r.Fault {
		buf := append([]byte(nil), "i2c scan: bus fault at "...)
		return string(conv.AppendAddrHex(buf, r.FaultAddr))
	}
	if len(r.Addrs) == 0 {
		return "i2c scan: no devices found"
	}
	buf := append([]byte(nil), "i2c scan: found "...)
	buf = conv.AppendInt(buf, int64(len(r.Addrs)))
	buf = append(buf, ':')
	for _, a := range r.Addrs {
		buf = append(buf, ' ')
		buf = conv.AppendAddrHex(buf, a)
	}
	if r.Truncated {
		buf = append(buf, " (report truncated)"...)
	}
	return string(buf)
}

// scan runs one bus scan and emits its single log line.
func (h *Harness) scan() ScanResult {
	r := Scan(h.probe)
	h.log.Printf("%s", r.Report())
	return r
}
