// services/bringup/sequencer.go
package bringup

import "carriercode-go/x/timex"

// InitializeAll performs ordered bring-up of every peripheral. Each step is
// independently fallible and updates exactly one health flag; failures are
// aggregated, never short-circuited, so the log shows every broken device at
// once. The return value is the terminal go/no-go decision: false means the
// caller must fail-stop, because a device in an unverified state must not be
// sampled.
func (h *Harness) InitializeAll() bool {
	h.scan()

	h.health.AccelOnline = h.initAccel()
	h.health.DistanceOnline = h.initDistance()

	storeOK := h.checkStore()
	rtcOK := h.setupWatchdog()
	h.health.CarrierOnline = storeOK && rtcOK

	ok := h.health.AccelOnline && h.health.DistanceOnline && h.health.CarrierOnline
	if ok {
		h.recordBringUp()
		h.log.Printf("bring-up complete: all devices online")
	} else {
		h.log.Printf("bring-up failed: accel=%v distance=%v carrier=%v",
			h.health.AccelOnline, h.health.DistanceOnline, h.health.CarrierOnline)
	}
	return ok
}

func (h *Harness) initAccel() bool {
	if err := h.accel.Configure(); err != nil {
		h.log.Printf("accel: init failed: %v", err)
		return false
	}
	h.log.Printf("accel: online")
	return true
}

func (h *Harness) initDistance() bool {
	if err := h.dist.Configure(); err != nil {
		h.log.Printf("distance: init failed: %v", err)
		return false
	}
	h.log.Printf("distance: online")
	return true
}

// setupWatchdog brings up the RTC, arms the watchdog, and confirms chip
// presence. Detection failure vetoes the carrier even when the store passed.
func (h *Harness) setupWatchdog() bool {
	if err := h.rtc.Configure(); err != nil {
		h.log.Printf("rtc: init failed: %v", err)
		return false
	}
	if err := h.rtc.SetWatchdogTimeout(h.cfg.WatchdogTimeout); err != nil {
		h.log.Printf("rtc: watchdog arm failed: %v", err)
		return false
	}
	if !h.rtc.Detect() {
		h.log.Printf("rtc: not detected")
		return false
	}
	h.log.Printf("rtc: watchdog armed, timeout %dms", timex.Ms(h.cfg.WatchdogTimeout))
	return true
}
