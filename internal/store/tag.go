package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TagKind discriminates the variants of a TagValue.
type TagKind uint8

const (
	// TagBool is a boolean tag variant.
	TagBool TagKind = iota
	// TagInt is a signed integer tag variant.
	TagInt
	// TagFloat is a floating point tag variant.
	TagFloat
	// TagString is a text tag variant; it cannot be persisted.
	TagString
)

// tagPackedSize is the fixed on-device size of a tag value:
// one kind byte plus eight payload bits bytes.
const tagPackedSize = 1 + 8

// TagValue is a small tagged union carried by application-level tags.
// Numeric and boolean variants pack into a fixed-size form; the string
// variant exists for in-memory use only.
type TagValue struct {
	kind TagKind
	bits uint64
	str  string
}

// BoolTag builds a boolean TagValue.
func BoolTag(v bool) TagValue {
	var bits uint64
	if v {
		bits = 1
	}
	return TagValue{kind: TagBool, bits: bits}
}

// IntTag builds an integer TagValue.
func IntTag(v int64) TagValue {
	return TagValue{kind: TagInt, bits: uint64(v)}
}

// FloatTag builds a floating point TagValue.
func FloatTag(v float64) TagValue {
	return TagValue{kind: TagFloat, bits: math.Float64bits(v)}
}

// StringTag builds a text TagValue. It cannot be stored in a Tag.
func StringTag(s string) TagValue {
	return TagValue{kind: TagString, str: s}
}

// Kind returns the variant discriminator.
func (t TagValue) Kind() TagKind { return t.kind }

// Bool returns the boolean payload.
func (t TagValue) Bool() bool { return t.bits != 0 }

// Int returns the integer payload.
func (t TagValue) Int() int64 { return int64(t.bits) }

// Float returns the floating point payload.
func (t TagValue) Float() float64 { return math.Float64frombits(t.bits) }

// Str returns the text payload of a string variant.
func (t TagValue) Str() string { return t.str }

func (t TagValue) pack() []byte {
	buf := make([]byte, tagPackedSize)
	buf[0] = byte(t.kind)
	binary.LittleEndian.PutUint64(buf[1:], t.bits)
	return buf
}

func unpackTag(buf []byte) TagValue {
	return TagValue{
		kind: TagKind(buf[0]),
		bits: binary.LittleEndian.Uint64(buf[1:]),
	}
}

// Tag persists a TagValue through its fixed-size packed form. The string
// variant is rejected at both ends before any buffer mutation.
type Tag struct {
	v *Value
}

// NewTag declares a tag value with the given initial content. The string
// variant cannot be persisted and is rejected here.
func NewTag(s *Store, id string, init TagValue) (*Tag, error) {
	if init.Kind() == TagString {
		return nil, fmt.Errorf("tag %q: %w", id, ErrUnsupportedKind)
	}
	return &Tag{v: NewValue(s, id, tagPackedSize, init.pack())}, nil
}

// Record returns the underlying value record, e.g. for a ValueList.
func (p *Tag) Record() *Value { return p.v }

// Get returns the stored tag value.
func (p *Tag) Get() (TagValue, error) {
	t := unpackTag(p.v.buf)
	if t.Kind() == TagString {
		return TagValue{}, ErrUnsupportedKind
	}
	return t, nil
}

// GetInto stores the current tag value into dst and reports whether dst
// already held it. A string-variant dst fails without mutation.
func (p *Tag) GetInto(dst *TagValue) GetResult {
	if dst.Kind() == TagString {
		return GetFailed
	}
	cur := unpackTag(p.v.buf)
	res := GetChanged
	if cur == *dst {
		res = GetUnchanged
	}
	*dst = cur
	return res
}

// Set updates the tag in memory and on the device. The string variant is
// rejected; setting the current value is a no-op with no device traffic.
func (p *Tag) Set(val TagValue) error {
	if val.Kind() == TagString {
		return fmt.Errorf("tag %q: %w", p.v.id.String(), ErrUnsupportedKind)
	}
	if p.v.setBytes(val.pack()) == GetUnchanged {
		return nil
	}
	return p.v.updateValue()
}

// Equals reports whether the stored tag equals val.
func (p *Tag) Equals(val TagValue) bool {
	t := unpackTag(p.v.buf)
	return t.kind == val.kind && t.bits == val.bits
}
