// services/bringup/loop.go
package bringup

import "carriercode-go/errcode"

// iterate is one pass of the sampling loop. The interval-gated sampling and
// the one-shot self-test are independent conditions checked every pass; the
// self-test firing does not reset the sample timer.
func (h *Harness) iterate() error {
	now := h.clk.Now()
	if now.Sub(h.lastSample) >= h.cfg.SampleInterval {
		h.lastSample = now
		h.sampleRound()
	}
	if h.selfTest == latchArmed {
		if !h.runPowerCycleTest() {
			return errcode.Halted
		}
	}
	return nil
}

// sampleRound pulls one reading from each online sensor and logs it. A read
// failure is a transient miss, not a device fault: it never mutates health
// and never halts the loop. While the carrier is healthy the watchdog gets
// fed here, so a fail-stop halt stops the feeding and the watchdog forces
// the restart.
func (h *Harness) sampleRound() {
	if h.health.DistanceOnline {
		if mm, err := h.dist.Read(); err != nil {
			h.log.Printf("distance: read miss: %v", err)
		} else {
			h.log.Printf("distance: %d mm", mm)
		}
	}
	if h.health.AccelOnline {
		if x, y, z, err := h.accel.ReadAcceleration(); err != nil {
			h.log.Printf("accel: read miss: %v", err)
		} else {
			h.log.Printf("accel: x=%d y=%d z=%d mg", x, y, z)
		}
	}
	if h.health.CarrierOnline {
		_ = h.rtc.Feed()
	}
}
