// Package mockdev provides a mock implementation of the device layer for testing
package mockdev

import (
	"fmt"

	"github.com/nvkv/nvkv/internal/device"
)

// MockDevice implements device.Device for testing purposes. It counts
// physical reads and writes so tests can assert wear properties, and can
// inject faults past a configurable address.
type MockDevice struct {
	data []byte

	// Reads is the total number of ReadByte calls served.
	Reads int
	// Writes is the total number of WriteByte calls served.
	Writes int
	// WritesAt counts writes per address.
	WritesAt map[int]int

	// FailAfter makes any access at or past this address fail when >= 0.
	FailAfter int
}

var _ device.Device = (*MockDevice)(nil)

// New creates a MockDevice of the given size with fault injection disabled.
func New(size int) *MockDevice {
	return &MockDevice{
		data:      make([]byte, size),
		WritesAt:  make(map[int]int),
		FailAfter: -1,
	}
}

// ReadByte reads the byte at addr, counting the access.
func (m *MockDevice) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= len(m.data) {
		return 0, fmt.Errorf("read at %d outside device range [0, %d)", addr, len(m.data))
	}
	if m.FailAfter >= 0 && addr >= m.FailAfter {
		return 0, fmt.Errorf("injected read fault at %d", addr)
	}
	m.Reads++
	return m.data[addr], nil
}

// WriteByte stores b at addr, counting the access.
func (m *MockDevice) WriteByte(addr int, b byte) error {
	if addr < 0 || addr >= len(m.data) {
		return fmt.Errorf("write at %d outside device range [0, %d)", addr, len(m.data))
	}
	if m.FailAfter >= 0 && addr >= m.FailAfter {
		return fmt.Errorf("injected write fault at %d", addr)
	}
	m.Writes++
	m.WritesAt[addr]++
	m.data[addr] = b
	return nil
}

// Begin returns the first addressable offset.
func (m *MockDevice) Begin() int { return 0 }

// End returns one past the last addressable offset.
func (m *MockDevice) End() int { return len(m.data) }

// Bytes exposes the raw contents for assertions.
func (m *MockDevice) Bytes() []byte { return m.data }

// ResetCounters zeroes the access counters without touching contents.
func (m *MockDevice) ResetCounters() {
	m.Reads = 0
	m.Writes = 0
	m.WritesAt = make(map[int]int)
}
