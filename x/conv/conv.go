// Package conv holds allocation-light numeric formatting helpers shared by
// the log sink and the scan reporter.
package conv

const hexd = "0123456789ABCDEF"

// AppendU8Hex appends a two-digit uppercase hex rendering of b (no 0x).
func AppendU8Hex(dst []byte, b byte) []byte {
	return append(dst, hexd[b>>4], hexd[b&0xF])
}

// AppendAddrHex appends "0x" plus two hex digits for a 7-bit bus address.
func AppendAddrHex(dst []byte, addr uint16) []byte {
	dst = append(dst, '0', 'x')
	return AppendU8Hex(dst, byte(addr))
}

// AppendInt appends the base-10 rendering of a signed integer.
func AppendInt(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		return AppendUint(dst, uint64(-n))
	}
	return AppendUint(dst, uint64(n))
}

// AppendUint appends the base-10 rendering of an unsigned integer.
func AppendUint(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// AppendUintHex appends the minimal uppercase hex rendering of n (no 0x).
func AppendUintHex(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return append(dst, buf[i:]...)
}

// Itoa renders a signed integer in base 10.
func Itoa(n int64) string { return string(AppendInt(nil, n)) }
