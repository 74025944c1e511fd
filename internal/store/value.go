package store

import (
	"bytes"
	"fmt"
	"math"
)

const (
	// sizeLen is the width of the on-device size field.
	sizeLen = 2
	// recordOverhead is the per-record cost beyond the value bytes.
	recordOverhead = IDLen + sizeLen
)

// GetResult reports the outcome of a byte-level get or set.
type GetResult int

const (
	// GetFailed means the operation was rejected before touching the buffer.
	GetFailed GetResult = iota
	// GetUnchanged means the operation succeeded and the bytes were already equal.
	GetUnchanged
	// GetChanged means the operation succeeded and the bytes differ from before.
	GetChanged
)

// Value is one persistable record: an identifier, a declared payload size,
// the authoritative in-memory copy of the payload, and the device address
// once stored. Two values denote the same logical key iff their id and size
// both match.
type Value struct {
	s       *Store
	id      ID
	address int
	size    int
	buf     []byte
}

// NewValue declares a value of the given payload size bound to s. The
// initial bytes are copied in; a nil initial yields a zero-filled buffer.
// No device traffic happens until the value is added to the store.
func NewValue(s *Store, id string, size int, initial []byte) *Value {
	if len(id) > IDLen {
		s.sugar.Warnw("identifier truncated", "id", id, "max", IDLen)
	}
	v := &Value{
		s:    s,
		id:   NewID(id),
		size: size,
		buf:  make([]byte, size),
	}
	copy(v.buf, initial)
	return v
}

// newStoredValue wraps bytes decoded from the device at address.
// The buffer is adopted, not copied.
func newStoredValue(s *Store, id ID, address, size int, buf []byte) *Value {
	return &Value{s: s, id: id, address: address, size: size, buf: buf}
}

// ID returns the value's identifier.
func (v *Value) ID() ID { return v.id }

// Address returns the device offset of the record start, 0 if not stored.
func (v *Value) Address() int { return v.address }

// Size returns the declared payload size in bytes.
func (v *Value) Size() int { return v.size }

// IsStored reports whether the value has a location on the device.
func (v *Value) IsStored() bool { return v.address != 0 }

// Bytes returns the in-memory payload. The slice is owned by the value;
// mutate it only through setBytes or the typed wrappers.
func (v *Value) Bytes() []byte { return v.buf }

// Match reports whether v and other denote the same logical key
// (identifier and size both equal).
func (v *Value) Match(other *Value) bool {
	return v.id == other.id && v.size == other.size
}

// Record sub-addresses, pure arithmetic from address and size.

func (v *Value) idAddress() int { return v.address }

func (v *Value) sizeAddress() int { return v.address + IDLen }

func (v *Value) valueAddress() int { return v.address + recordOverhead }

func (v *Value) nextRecordAddress() int { return v.address + recordOverhead + v.size }

// Set updates the payload and its device copy. Unchanged bytes cause no
// device traffic at all.
func (v *Value) Set(src []byte) error {
	if v.setBytes(src) == GetUnchanged {
		return nil
	}
	return v.updateValue()
}

// GetInto copies the payload into dst and reports whether dst already held
// the same bytes.
func (v *Value) GetInto(dst []byte) GetResult {
	return v.getBytes(dst)
}

// getBytes copies the payload into dst and reports whether dst already held
// the same bytes.
func (v *Value) getBytes(dst []byte) GetResult {
	res := GetChanged
	if bytes.Equal(dst, v.buf) {
		res = GetUnchanged
	}
	copy(dst, v.buf)
	return res
}

// setBytes copies src into the payload and reports whether anything
// actually changed, so callers can skip the device write.
func (v *Value) setBytes(src []byte) GetResult {
	if bytes.Equal(src, v.buf) {
		return GetUnchanged
	}
	copy(v.buf, src)
	return GetChanged
}

// storeRecord writes the id, size and value fields at the value's address,
// in that order, stopping at the first failure.
func (v *Value) storeRecord() error {
	if v.size > math.MaxUint16 {
		return fmt.Errorf("value %q size %d exceeds record limit", v.id.String(), v.size)
	}
	if err := v.s.storeID(v.idAddress(), v.id); err != nil {
		return err
	}
	if err := v.s.updateUint16(v.sizeAddress(), uint16(v.size)); err != nil {
		return err
	}
	return v.updateValue()
}

// updateValue writes only the value bytes. Fails when the value has no
// device location yet.
func (v *Value) updateValue() error {
	if !v.IsStored() {
		return fmt.Errorf("value %q: %w", v.id.String(), ErrNotStored)
	}
	return v.s.updateBytes(v.valueAddress(), v.buf)
}
