package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ScalarType is the closed set of fixed-width types a Scalar can persist.
type ScalarType interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Scalar persists one fixed-width value. The payload is the little-endian
// raw encoding of T; the declared size is T's encoded width.
type Scalar[T ScalarType] struct {
	v *Value
}

// NewScalar declares a scalar value with the given initial content.
// No device traffic happens until the value is added to the store.
func NewScalar[T ScalarType](s *Store, id string, init T) *Scalar[T] {
	buf := encodeScalar(init)
	return &Scalar[T]{v: NewValue(s, id, len(buf), buf)}
}

// Record returns the underlying value record, e.g. for a ValueList.
func (p *Scalar[T]) Record() *Value { return p.v }

// Get returns the current in-memory value.
func (p *Scalar[T]) Get() T {
	return decodeScalar[T](p.v.buf)
}

// GetInto stores the current value into dst and reports whether dst
// already held it.
func (p *Scalar[T]) GetInto(dst *T) GetResult {
	cur := decodeScalar[T](p.v.buf)
	res := GetChanged
	if cur == *dst {
		res = GetUnchanged
	}
	*dst = cur
	return res
}

// Set updates the value in memory and on the device. Setting the current
// value is a no-op with no device traffic.
func (p *Scalar[T]) Set(val T) error {
	if p.v.setBytes(encodeScalar(val)) == GetUnchanged {
		return nil
	}
	return p.v.updateValue()
}

// Equals reports whether the stored value equals val.
func (p *Scalar[T]) Equals(val T) bool {
	return bytes.Equal(encodeScalar(val), p.v.buf)
}

func encodeScalar[T ScalarType](val T) []byte {
	switch v := any(val).(type) {
	case bool:
		if v {
			return []byte{1}
		}
		return []byte{0}
	case int8:
		return []byte{byte(v)}
	case uint8:
		return []byte{v}
	case int16:
		return binary.LittleEndian.AppendUint16(nil, uint16(v))
	case uint16:
		return binary.LittleEndian.AppendUint16(nil, v)
	case int32:
		return binary.LittleEndian.AppendUint32(nil, uint32(v))
	case uint32:
		return binary.LittleEndian.AppendUint32(nil, v)
	case int64:
		return binary.LittleEndian.AppendUint64(nil, uint64(v))
	case uint64:
		return binary.LittleEndian.AppendUint64(nil, v)
	case float32:
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))
	case float64:
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
	default:
		panic(fmt.Sprintf("unreachable scalar type %T", val))
	}
}

func decodeScalar[T ScalarType](buf []byte) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = buf[0] != 0
	case *int8:
		*p = int8(buf[0])
	case *uint8:
		*p = buf[0]
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(buf))
	case *uint16:
		*p = binary.LittleEndian.Uint16(buf)
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(buf))
	case *uint32:
		*p = binary.LittleEndian.Uint32(buf)
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(buf))
	case *uint64:
		*p = binary.LittleEndian.Uint64(buf)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(buf))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(buf))
	}
	return out
}

// String persists bounded-length text. The payload is maxLen+1 bytes so a
// terminator always fits; longer inputs are truncated to maxLen bytes.
type String struct {
	v *Value
}

// NewString declares a text value holding at most maxLen bytes. The
// initial content is truncated by the same law as Set.
func NewString(s *Store, id string, maxLen int, init string) *String {
	p := &String{v: NewValue(s, id, maxLen+1, nil)}
	n := min(maxLen, len(init))
	copy(p.v.buf, init[:n])
	return p
}

// Record returns the underlying value record, e.g. for a ValueList.
func (p *String) Record() *Value { return p.v }

// Get returns the stored text up to the terminator, never more than
// maxLen bytes.
func (p *String) Get() string {
	b := p.v.buf
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Set stores val, truncated to maxLen bytes, always followed by a
// terminator. Setting the current text is a no-op with no device traffic.
func (p *String) Set(val string) error {
	if p.Equals(val) {
		return nil
	}
	n := min(len(p.v.buf)-1, len(val))
	copy(p.v.buf[:n], val[:n])
	p.v.buf[n] = 0
	return p.v.updateValue()
}

// Equals reports whether the stored text equals val. The empty string
// matches a buffer whose first byte is the terminator.
func (p *String) Equals(val string) bool {
	return p.Get() == val
}
