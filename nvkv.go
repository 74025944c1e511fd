// Package nvkv is a compact persistent key-value store for small,
// write-limited byte-addressable devices such as EEPROM parts.
//
// A program declares a set of named, fixed-or-bounded-size values bound to
// a store, initializes the store once, and thereafter every assignment is
// at most one bounded device write. Writes compare each existing byte
// first and skip unchanged ones, so re-storing the same value costs no
// device wear at all.
//
// Example usage:
//
//	dev, err := nvkv.OpenFileDevice("state.img", 1024)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	ps, err := nvkv.Open(dev, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	count := nvkv.NewScalar[uint16](ps, "cnt", 0)
//	name := nvkv.NewString(ps, "nam", 10, "Hello!")
//
//	values := nvkv.NewValueList()
//	values.Append(count.Record())
//	values.Append(name.Record())
//	if _, err := ps.BeginWith(values, false); err != nil {
//		log.Fatal(err)
//	}
//
//	// Values now reflect what survived the last power cycle.
//	_ = count.Set(count.Get() + 1)
//	_ = name.Set("this will be truncated to ten bytes!")
package nvkv

import (
	"go.uber.org/zap"

	"github.com/nvkv/nvkv/internal/config"
	"github.com/nvkv/nvkv/internal/device"
	"github.com/nvkv/nvkv/internal/store"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// DefaultConfig returns a Config struct populated with default values. Re-exported for user convenience.
var DefaultConfig = config.DefaultConfig

// Device is the byte-addressable device boundary a store writes to.
type Device = device.Device

// MemDevice is a RAM-backed device for hosts without a real part.
type MemDevice = device.MemDevice

// FileDevice is a device image persisted in a host file.
type FileDevice = device.FileDevice

// Store is a persistent key-value store bound to a device window.
type Store = store.Store

// Value is one persistable record; ValueList carries a declared schema.
type (
	Value     = store.Value
	ValueList = store.ValueList
)

// Iterator walks stored records one at a time.
type Iterator = store.Iterator

// GetResult is the tri-state outcome of a byte-level get or set.
type GetResult = store.GetResult

// GetResult values.
const (
	GetFailed    = store.GetFailed
	GetUnchanged = store.GetUnchanged
	GetChanged   = store.GetChanged
)

// Typed value kinds, re-exported.
type (
	String   = store.String
	Tag      = store.Tag
	TagValue = store.TagValue
	TagKind  = store.TagKind
)

// Tag variants.
const (
	TagBool   = store.TagBool
	TagInt    = store.TagInt
	TagFloat  = store.TagFloat
	TagString = store.TagString
)

// Sentinel errors, re-exported.
var (
	ErrNotInitialized  = store.ErrNotInitialized
	ErrNotStored       = store.ErrNotStored
	ErrOutOfRange      = store.ErrOutOfRange
	ErrUnsupportedKind = store.ErrUnsupportedKind
)

// Open binds a store to a window of dev. A nil cfg means the full device
// range; a nil logger disables diagnostics. No device traffic happens
// until Begin or BeginWith.
func Open(dev Device, cfg *Config, logger *zap.Logger) (*Store, error) {
	return store.NewStore(dev, cfg, logger)
}

// NewMemDevice creates a RAM-backed device of the given size in bytes.
func NewMemDevice(size int) *MemDevice { return device.NewMemDevice(size) }

// OpenFileDevice opens (or creates) a device image at path with the given
// size in bytes.
func OpenFileDevice(path string, size int) (*FileDevice, error) {
	return device.OpenFileDevice(path, size)
}

// NewValueList creates an empty declared-value collection.
func NewValueList() *ValueList { return store.NewValueList() }

// NewValue declares a raw byte value of the given payload size.
func NewValue(s *Store, id string, size int, initial []byte) *Value {
	return store.NewValue(s, id, size, initial)
}

// NewScalar declares a fixed-width scalar value.
func NewScalar[T store.ScalarType](s *Store, id string, init T) *store.Scalar[T] {
	return store.NewScalar(s, id, init)
}

// NewString declares a text value holding at most maxLen bytes.
func NewString(s *Store, id string, maxLen int, init string) *String {
	return store.NewString(s, id, maxLen, init)
}

// NewTag declares a tag value; the string variant is rejected.
func NewTag(s *Store, id string, init TagValue) (*Tag, error) {
	return store.NewTag(s, id, init)
}

// Tag variant constructors, re-exported.
var (
	BoolTag   = store.BoolTag
	IntTag    = store.IntTag
	FloatTag  = store.FloatTag
	StringTag = store.StringTag
)
