package bringup

import (
	"bytes"
	"errors"
	"time"

	"github.com/benbjohnson/clock"

	"carriercode-go/errcode"
	"carriercode-go/x/logx"
)

var errFake = errors.New("fake failure")

// Interface checks for the shared fakes.
var (
	_ Prober         = (*fakeProber)(nil)
	_ PowerSwitch    = (*fakePower)(nil)
	_ DistanceSensor = (*fakeDistance)(nil)
	_ Accelerometer  = (*fakeAccel)(nil)
	_ RTCWatchdog    = (*fakeRTC)(nil)
	_ Store          = (*fakeStore)(nil)
)

type fakeProber struct {
	present map[uint16]bool
	faultAt uint16 // 0 = no fault
	probed  []uint16
}

func (f *fakeProber) ProbeAddress(addr uint16) error {
	f.probed = append(f.probed, addr)
	if f.faultAt != 0 && addr == f.faultAt {
		return errcode.BusFault
	}
	if f.present[addr] {
		return nil
	}
	return errcode.NoAck
}

// fakePower models the rail actually gating the sensor sub-board: switching
// off removes the sensor addresses from the linked prober's bus.
type fakePower struct {
	on          bool
	transitions []bool

	probe       *fakeProber
	sensorAddrs []uint16
}

func (f *fakePower) SetEnabled(on bool) {
	f.on = on
	f.transitions = append(f.transitions, on)
	if f.probe == nil {
		return
	}
	for _, a := range f.sensorAddrs {
		f.probe.present[a] = on
	}
}

// fakeDistance fails Configure from the failFrom-th call onward (0 = never).
type fakeDistance struct {
	failFrom   int
	mm         uint16
	readErr    error
	configures int
	reads      int
}

func (f *fakeDistance) Configure() error {
	f.configures++
	if f.failFrom > 0 && f.configures >= f.failFrom {
		return errcode.InitFailed
	}
	return nil
}

func (f *fakeDistance) Read() (uint16, error) {
	f.reads++
	return f.mm, f.readErr
}

type fakeAccel struct {
	failFrom   int
	x, y, z    int32
	readErr    error
	configures int
	reads      int
}

func (f *fakeAccel) Configure() error {
	f.configures++
	if f.failFrom > 0 && f.configures >= f.failFrom {
		return errcode.InitFailed
	}
	return nil
}

func (f *fakeAccel) ReadAcceleration() (int32, int32, int32, error) {
	f.reads++
	return f.x, f.y, f.z, f.readErr
}

type fakeRTC struct {
	cfgErr  error
	armErr  error
	detect  bool
	armed   time.Duration
	detects int
	feeds   int
}

func (f *fakeRTC) Configure() error { return f.cfgErr }
func (f *fakeRTC) SetWatchdogTimeout(period time.Duration) error {
	f.armed = period
	return f.armErr
}
func (f *fakeRTC) Detect() bool {
	f.detects++
	return f.detect
}
func (f *fakeRTC) Feed() error {
	f.feeds++
	return nil
}

// fakeStore keeps bytes in a map; dropWrites simulates a store whose writes
// silently fail to persist (stamp read-back mismatch).
type fakeStore struct {
	cfgErr     error
	dropWrites bool
	mem        map[uint16]byte
	erases     int
	writes     int
}

func newFakeStore(version byte) *fakeStore {
	return &fakeStore{mem: map[uint16]byte{nvVersionAddr: version}}
}

func (f *fakeStore) Configure() error { return f.cfgErr }
func (f *fakeStore) ReadByte(memaddr uint16) (byte, error) {
	return f.mem[memaddr], nil
}
func (f *fakeStore) WriteByte(memaddr uint16, val byte) error {
	f.writes++
	if !f.dropWrites {
		f.mem[memaddr] = val
	}
	return nil
}
func (f *fakeStore) Erase() error {
	f.erases++
	f.mem = map[uint16]byte{}
	return nil
}

// fixture wires a harness to healthy fakes: devices at the reference
// addresses, a matching layout stamp, and a detectable RTC.
type fixture struct {
	probe  *fakeProber
	power  *fakePower
	dist   *fakeDistance
	accel  *fakeAccel
	rtc    *fakeRTC
	store  *fakeStore
	logbuf *bytes.Buffer
	h      *Harness
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		probe: &fakeProber{present: map[uint16]bool{
			0x29: true, 0x50: true, 0x62: true, 0x68: true,
		}},
		dist:   &fakeDistance{mm: 180},
		accel:  &fakeAccel{x: -12, y: 4, z: 1002},
		rtc:    &fakeRTC{detect: true},
		store:  newFakeStore(LayoutVersion),
		logbuf: &bytes.Buffer{},
	}
	f.power = &fakePower{on: true, probe: f.probe, sensorAddrs: []uint16{0x29, 0x62}}
	if cfg.Log == nil {
		cfg.Log = logx.New(f.logbuf)
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = 100 * time.Millisecond // clamp floor; keeps tests fast
	}
	f.h = New(cfg, Devices{
		Probe:    f.probe,
		Power:    f.power,
		Distance: f.dist,
		Accel:    f.accel,
		RTC:      f.rtc,
		Store:    f.store,
	})
	return f
}

// newMockFixture is a fixture on a mock clock for timer-gating tests.
func newMockFixture(cfg Config) (*fixture, *clock.Mock) {
	clk := clock.NewMock()
	cfg.Clock = clk
	return newFixture(cfg), clk
}
