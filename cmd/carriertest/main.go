//go:build pico

// cmd/carriertest/main.go
package main

import (
	"context"
	"strings"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"carriercode-go/drivers/ds1374"
	"carriercode-go/drivers/mb85rc"
	"carriercode-go/drivers/msa301"
	"carriercode-go/drivers/vl53l0x"
	"carriercode-go/errcode"
	"carriercode-go/services/bringup"
	"carriercode-go/x/logx"

	"machine"
)

const (
	// Sensor rail high-side switch, EN is active low.
	railEnablePin = machine.GP22

	uartBaud = 115200
)

// i2cProber issues a zero-length write and classifies the outcome.
type i2cProber struct {
	bus drivers.I2C
}

func (p *i2cProber) ProbeAddress(addr uint16) error {
	err := p.bus.Tx(addr, nil, nil)
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "timeout") {
		return &errcode.E{C: errcode.BusFault, Op: "i2c.probe", Err: err}
	}
	return &errcode.E{C: errcode.NoAck, Op: "i2c.probe", Err: err}
}

// railSwitch drives the sensor rail through its active-low enable pin.
type railSwitch struct {
	en machine.Pin
}

func (r *railSwitch) SetEnabled(on bool) {
	if on {
		r.en.Low()
	} else {
		r.en.High()
	}
}

// mirror duplicates log output to the USB console and UART0.
type mirror struct {
	u *uartx.UART
}

func (m *mirror) Write(p []byte) (int, error) {
	print(string(p))
	if m.u != nil {
		_, _ = m.u.Write(p)
	}
	return len(p), nil
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High() // signal "running"

	rail := &railSwitch{en: railEnablePin}
	rail.en.Configure(machine.PinConfig{Mode: machine.PinOutput})
	rail.SetEnabled(true)

	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
		Frequency: 400_000,
	})

	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: uartBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	log := logx.New(&mirror{u: uartx.UART0})

	h := bringup.New(bringup.Config{Log: log}, bringup.Devices{
		Probe:    &i2cProber{bus: machine.I2C0},
		Power:    rail,
		Distance: vl53l0x.New(machine.I2C0, vl53l0x.Config{}),
		Accel:    msa301.New(machine.I2C0, msa301.Config{}),
		RTC:      ds1374.New(machine.I2C0, ds1374.Config{}),
		Store:    mb85rc.New(machine.I2C0, mb85rc.Config{}),
	})

	err := h.Run(context.Background())
	log.Printf("halted: %v", err)

	// Fail-stop: park blinking until the DS1374 watchdog resets the board.
	// A healthy run never reaches here.
	for {
		led.High()
		time.Sleep(250 * time.Millisecond)
		led.Low()
		time.Sleep(250 * time.Millisecond)
	}
}
