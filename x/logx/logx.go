// Package logx is a minimal line logger for the bring-up harness. It writes
// one timestamped text line per event to a single io.Writer sink and supports
// a small verb subset (%s %d %x %v %%) so MCU builds do not pull in fmt.
package logx

import (
	"io"

	"carriercode-go/x/conv"
	"carriercode-go/x/timex"
)

// Logger is the harness's sole output channel.
type Logger struct {
	out   io.Writer
	now   func() int64 // unix ms
	start int64
}

// New returns a Logger stamping lines with milliseconds since construction.
func New(out io.Writer) *Logger {
	l := &Logger{out: out, now: timex.NowMs}
	l.start = l.now()
	return l
}

// NewWithNow injects the time source; used by tests for stable stamps.
func NewWithNow(out io.Writer, now func() int64) *Logger {
	return &Logger{out: out, now: now, start: now()}
}

// Printf formats and writes one line. Unknown verbs are emitted verbatim.
func (l *Logger) Printf(format string, a ...any) {
	buf := make([]byte, 0, 96)
	buf = l.stamp(buf)
	buf = appendFormat(buf, format, a...)
	buf = append(buf, '\n')
	_, _ = l.out.Write(buf)
}

// Println writes one line of space-joined values.
func (l *Logger) Println(a ...any) {
	buf := make([]byte, 0, 96)
	buf = l.stamp(buf)
	for i, v := range a {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendAny(buf, v)
	}
	buf = append(buf, '\n')
	_, _ = l.out.Write(buf)
}

func (l *Logger) stamp(buf []byte) []byte {
	buf = append(buf, '[')
	buf = conv.AppendInt(buf, l.now()-l.start)
	return append(buf, "ms] "...)
}

func appendFormat(buf []byte, format string, a ...any) []byte {
	argi := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			buf = append(buf, format[i])
			continue
		}
		i++
		switch format[i] {
		case '%':
			buf = append(buf, '%')
		case 's':
			if argi < len(a) {
				buf = appendString(buf, a[argi])
				argi++
			}
		case 'd':
			if argi < len(a) {
				if n, ok := toInt64(a[argi]); ok {
					buf = conv.AppendInt(buf, n)
				} else {
					buf = append(buf, '?')
				}
				argi++
			}
		case 'x':
			if argi < len(a) {
				if n, ok := toInt64(a[argi]); ok {
					buf = conv.AppendUintHex(buf, uint64(n))
				} else {
					buf = append(buf, '?')
				}
				argi++
			}
		case 'v':
			if argi < len(a) {
				buf = appendAny(buf, a[argi])
				argi++
			}
		default:
			buf = append(buf, '%', format[i])
		}
	}
	return buf
}

func appendString(buf []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(buf, x...)
	case []byte:
		return append(buf, x...)
	case error:
		return append(buf, x.Error()...)
	default:
		return append(buf, '?')
	}
}

func appendAny(buf []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(buf, x...)
	case bool:
		if x {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case error:
		return append(buf, x.Error()...)
	default:
		if n, ok := toInt64(v); ok {
			return conv.AppendInt(buf, n)
		}
		return append(buf, '?')
	}
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	default:
		return 0, false
	}
}
