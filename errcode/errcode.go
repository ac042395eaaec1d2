package errcode

// Code is a stable error identifier for bus and bring-up failures.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Bus transaction outcomes.
	NoAck    Code = "no_ack"    // no device at the probed address
	BusFault Code = "bus_fault" // stuck or mis-driven bus line; aborts a scan

	// Driver outcomes.
	NotReady Code = "not_ready"
	Timeout  Code = "timeout"

	// Bring-up outcomes.
	InitFailed     Code = "init_failed"
	StoreIntegrity Code = "store_integrity"
	Halted         Code = "halted" // terminal fail-stop state

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
