package ds1374

import (
	"errors"
	"testing"
	"time"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

// Register-level DS1374 fake.
type fakeI2C struct {
	present bool
	regs    [9]byte

	counterWrites int
}

func newFake() *fakeI2C {
	f := &fakeI2C{present: true}
	f.regs[regControl] = ctlEOSC // oscillator disabled at power-up
	return f
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if !f.present || addr != Address {
		return errors.New("no ack")
	}
	if len(w) >= 2 && len(r) == 0 {
		if w[0] == regWDALM0 {
			f.counterWrites++
		}
		for i, b := range w[1:] {
			f.regs[int(w[0])+i] = b
		}
		return nil
	}
	if len(w) == 1 && len(r) >= 1 {
		for i := range r {
			r[i] = f.regs[int(w[0])+i]
		}
		return nil
	}
	return nil
}

func (f *fakeI2C) counter() uint32 {
	return uint32(f.regs[regWDALM0]) | uint32(f.regs[regWDALM0+1])<<8 | uint32(f.regs[regWDALM0+2])<<16
}

func TestConfigure_EnablesOscillator(t *testing.T) {
	f := newFake()
	d := New(f, Config{})
	if err := d.Configure(); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if f.regs[regControl]&ctlEOSC != 0 {
		t.Fatal("oscillator still disabled after Configure")
	}
}

func TestDetect(t *testing.T) {
	f := newFake()
	d := New(f, Config{})
	if !d.Detect() {
		t.Fatal("expected detection to pass")
	}
	f.present = false
	if d.Detect() {
		t.Fatal("expected detection to fail with absent chip")
	}
}

func TestSetWatchdogTimeout_ArmsCounter(t *testing.T) {
	f := newFake()
	d := New(f, Config{})

	if err := d.SetWatchdogTimeout(MaxTimeout); err != nil {
		t.Fatalf("set timeout: %v", err)
	}
	if got := f.counter(); got != 0xFFFFFF {
		t.Fatalf("counter = %#x, want 0xFFFFFF", got)
	}
	ctl := f.regs[regControl]
	if ctl&ctlWACE == 0 || ctl&ctlWDALM == 0 {
		t.Fatalf("watchdog not enabled, control = %#x", ctl)
	}
}

func TestSetWatchdogTimeout_Range(t *testing.T) {
	f := newFake()
	d := New(f, Config{})
	if err := d.SetWatchdogTimeout(0); !errors.Is(err, ErrTimeoutRange) {
		t.Fatalf("expected ErrTimeoutRange for zero, got %v", err)
	}
	if err := d.SetWatchdogTimeout(MaxTimeout + time.Second); !errors.Is(err, ErrTimeoutRange) {
		t.Fatalf("expected ErrTimeoutRange beyond max, got %v", err)
	}
}

func TestFeed_ReloadsArmedValue(t *testing.T) {
	f := newFake()
	d := New(f, Config{})

	// Unarmed feed is a no-op.
	if err := d.Feed(); err != nil {
		t.Fatalf("unarmed feed: %v", err)
	}
	if f.counterWrites != 0 {
		t.Fatal("unarmed feed touched the counter")
	}

	if err := d.SetWatchdogTimeout(time.Second); err != nil {
		t.Fatalf("set timeout: %v", err)
	}
	before := f.counter()
	if err := d.Feed(); err != nil {
		t.Fatalf("feed: %v", err)
	}
	if f.counter() != before {
		t.Fatalf("feed changed the reload value: %#x -> %#x", before, f.counter())
	}
	if f.counterWrites != 2 {
		t.Fatalf("counter writes = %d, want 2", f.counterWrites)
	}
}

func TestReadTime(t *testing.T) {
	f := newFake()
	f.regs[0] = 0x78
	f.regs[1] = 0x56
	f.regs[2] = 0x34
	f.regs[3] = 0x12
	d := New(f, Config{})

	secs, err := d.ReadTime()
	if err != nil {
		t.Fatalf("read time: %v", err)
	}
	if secs != 0x12345678 {
		t.Fatalf("seconds = %#x, want 0x12345678", secs)
	}
}
