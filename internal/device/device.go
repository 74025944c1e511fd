// Package device provides interfaces and implementations for byte-addressable
// storage devices. A device is the lowest layer the store writes to: a fixed
// address range of individually readable and writable bytes, conceptually an
// EEPROM part.
package device

import "fmt"

// Device abstracts a byte-addressable storage device with a fixed
// addressable range [Begin, End).
type Device interface {
	// ReadByte reads the byte stored at addr.
	ReadByte(addr int) (byte, error)
	// WriteByte stores b at addr.
	WriteByte(addr int, b byte) error
	// Begin returns the first addressable offset.
	Begin() int
	// End returns one past the last addressable offset.
	End() int
}

// MemDevice is a RAM-backed Device for hosts without a real EEPROM part.
// Contents do not survive the process; it exists for simulation and tests.
type MemDevice struct {
	data []byte
}

// NewMemDevice creates a RAM-backed device of the given size in bytes.
func NewMemDevice(size int) *MemDevice {
	return &MemDevice{data: make([]byte, size)}
}

func (d *MemDevice) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= len(d.data) {
		return 0, fmt.Errorf("read at %d outside device range [0, %d)", addr, len(d.data))
	}
	return d.data[addr], nil
}

func (d *MemDevice) WriteByte(addr int, b byte) error {
	if addr < 0 || addr >= len(d.data) {
		return fmt.Errorf("write at %d outside device range [0, %d)", addr, len(d.data))
	}
	d.data[addr] = b
	return nil
}

func (d *MemDevice) Begin() int { return 0 }

func (d *MemDevice) End() int { return len(d.data) }

// Bytes exposes the raw contents for inspection.
func (d *MemDevice) Bytes() []byte { return d.data }
