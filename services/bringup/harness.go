// services/bringup/harness.go
package bringup

import (
	"context"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"carriercode-go/drivers/ds1374"
	"carriercode-go/errcode"
	"carriercode-go/x/logx"
	"carriercode-go/x/mathx"
)

// Config centralises timings. All fields are optional.
type Config struct {
	// SampleInterval gates the sampling loop. Default 1s.
	SampleInterval time.Duration
	// SettleDelay is the wait after cutting the sensor rail, sized for the
	// sub-board's bypass capacitors to discharge. Too short a wait produces
	// false "device absent" scans. Default 1s, clamped to [100ms, 10s].
	SettleDelay time.Duration
	// PollTick is the cooperative loop granularity. Default 10ms.
	PollTick time.Duration
	// WatchdogTimeout armed during bring-up. Default ds1374.MaxTimeout.
	WatchdogTimeout time.Duration

	// Clock defaults to the wall clock; tests inject clock.NewMock().
	Clock clock.Clock
	// Log defaults to a logger on stdout.
	Log *logx.Logger
}

// Harness owns the health registry, the sample tick, and the self-test
// latch, and drives every peripheral through the Devices interfaces.
// Single-threaded: Run is the only goroutine that touches its state.
type Harness struct {
	cfg Config
	log *logx.Logger
	clk clock.Clock

	probe Prober
	power PowerSwitch
	dist  DistanceSensor
	accel Accelerometer
	rtc   RTCWatchdog
	store Store

	health     Health
	lastSample time.Time
	selfTest   latch
}

// New builds a harness with defaulted config. The self-test starts armed.
func New(cfg Config, dev Devices) *Harness {
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = time.Second
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = time.Second
	}
	cfg.SettleDelay = mathx.Clamp(cfg.SettleDelay, 100*time.Millisecond, 10*time.Second)
	if cfg.PollTick <= 0 {
		cfg.PollTick = 10 * time.Millisecond
	}
	if cfg.WatchdogTimeout <= 0 {
		cfg.WatchdogTimeout = ds1374.MaxTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Log == nil {
		cfg.Log = logx.New(os.Stdout)
	}
	h := &Harness{
		cfg:      cfg,
		log:      cfg.Log,
		clk:      cfg.Clock,
		probe:    dev.Probe,
		power:    dev.Power,
		dist:     dev.Distance,
		accel:    dev.Accel,
		rtc:      dev.RTC,
		store:    dev.Store,
		selfTest: latchArmed,
	}
	h.lastSample = h.clk.Now()
	return h
}

// Health returns a copy of the current health registry.
func (h *Harness) Health() Health { return h.health }

// Run executes bring-up and then the sampling loop. It returns
// errcode.Halted when a health checkpoint fails: a terminal state with no
// outward transition except an externally triggered (watchdog) restart.
func (h *Harness) Run(ctx context.Context) error {
	if !h.InitializeAll() {
		return errcode.Halted
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := h.iterate(); err != nil {
			return err
		}
		h.clk.Sleep(h.cfg.PollTick)
	}
}
