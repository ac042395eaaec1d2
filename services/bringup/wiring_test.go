package bringup

import (
	"carriercode-go/drivers/ds1374"
	"carriercode-go/drivers/mb85rc"
	"carriercode-go/drivers/msa301"
	"carriercode-go/drivers/vl53l0x"
)

// The real chip drivers must satisfy the harness-facing interfaces.
var (
	_ DistanceSensor = (*vl53l0x.Device)(nil)
	_ Accelerometer  = (*msa301.Device)(nil)
	_ RTCWatchdog    = (*ds1374.Device)(nil)
	_ Store          = (*mb85rc.Device)(nil)
)
