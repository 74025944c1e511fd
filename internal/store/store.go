// Package store implements a persistent key-value log for small,
// write-limited byte-addressable devices. Records are laid out
// consecutively inside a configured address window:
//
//	[#>!] { [3-byte id][2-byte little-endian size][size value bytes] }* [#<!]
//
// The header and footer sentinels bracket the record region; the footer is
// relocated on every append and compaction. Writes compare the existing
// byte before touching the device, so re-storing an unchanged value costs
// no wear.
package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nvkv/nvkv/internal/config"
	"github.com/nvkv/nvkv/internal/device"
	"github.com/nvkv/nvkv/internal/metrics"
)

var (
	// ErrNotInitialized is returned by entry points called before a
	// successful Begin or Clear.
	ErrNotInitialized = errors.New("store not initialized")
	// ErrNotStored is returned when a value without a device location is
	// asked to update itself.
	ErrNotStored = errors.New("value not stored")
	// ErrOutOfRange is returned for device accesses outside the store window.
	ErrOutOfRange = errors.New("address out of range")
	// ErrUnsupportedKind is returned for tag kinds that cannot be persisted.
	ErrUnsupportedKind = errors.New("unsupported tag kind")
)

// Store owns an address window on a device and the record log inside it.
// A window has exactly one owner; concurrent stores over overlapping
// windows corrupt the log.
type Store struct {
	dev        device.Device
	beginIndex int
	endIndex   int

	// nextFree is the current footer address, 0 while uninitialized.
	nextFree int

	metrics *metrics.Metrics
	sugar   *zap.SugaredLogger
}

// NewStore binds a store to a window of dev. The configured window is
// clamped to the device range; a window smaller than config.MinWindowSize
// falls back to the full device range. No device traffic happens here.
func NewStore(dev device.Device, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	begin, end := cfg.BeginIndex, cfg.EndIndex
	if begin == 0 && end == 0 {
		begin, end = dev.Begin(), dev.End()
	}
	if begin < dev.Begin() || begin >= dev.End() {
		begin = dev.Begin()
	}
	if end > dev.End() || end <= begin {
		end = dev.End()
	}
	if end-begin < config.MinWindowSize {
		begin, end = dev.Begin(), dev.End()
	}
	if end-begin < config.MinWindowSize {
		return nil, fmt.Errorf("device range [%d, %d) smaller than %d bytes", dev.Begin(), dev.End(), config.MinWindowSize)
	}
	// Address 0 is the "not stored" sentinel; the header occupying
	// [begin, begin+3) guarantees no record ever starts there.
	if begin < 0 || begin+IDLen <= 0 {
		return nil, fmt.Errorf("device begins at negative address %d", begin)
	}

	m := metrics.New()
	if cfg.MetricsPrefix != "" {
		m.Publish(cfg.MetricsPrefix)
	}
	return &Store{
		dev:        dev,
		beginIndex: begin,
		endIndex:   end,
		metrics:    m,
		sugar:      logger.Sugar(),
	}, nil
}

// Metrics returns the store's wear counters.
func (s *Store) Metrics() *metrics.Metrics { return s.metrics }

// firstRecordAddress is the address just past the header.
func (s *Store) firstRecordAddress() int { return s.beginIndex + IDLen }

// IsInitialized reports whether Begin or Clear has succeeded.
func (s *Store) IsInitialized() bool { return s.nextFree != 0 }

func (s *Store) checkInitialized() error {
	if s.IsInitialized() {
		return nil
	}
	s.sugar.Errorw("store not initialized")
	return ErrNotInitialized
}

// Begin initializes the store without touching stored values. A region
// that does not start with the header sentinel is claimed by writing a
// fresh header and footer. Returns the number of stored records.
func (s *Store) Begin() (int, error) {
	s.nextFree = 0

	id, err := s.readID(s.beginIndex)
	if err != nil {
		return -1, fmt.Errorf("failed to read header: %w", err)
	}
	if id != headerID {
		if err := s.storeID(s.beginIndex, headerID); err != nil {
			return -1, fmt.Errorf("failed to store header: %w", err)
		}
		if err := s.storeID(s.firstRecordAddress(), footerID); err != nil {
			return -1, fmt.Errorf("failed to store footer: %w", err)
		}
		s.sugar.Infow("initialized empty store region",
			"begin", s.beginIndex, "end", s.endIndex)
	}

	count, footerAddr, err := s.scan()
	if err != nil {
		return -1, err
	}
	s.nextFree = footerAddr
	return count, nil
}

// BeginWith initializes the store and reconciles it against the declared
// values. Every declared value with a stored match is loaded from the
// device; the rest are appended. With removeUnused, stored records not in
// the declared set are discarded by rewriting the region with the declared
// values in declaration order. Returns the stored record count found
// before reconciliation.
func (s *Store) BeginWith(values *ValueList, removeUnused bool) (int, error) {
	stored, err := s.Begin()
	if err != nil {
		return stored, err
	}

	found := 0
	for _, v := range values.Items() {
		ok, err := s.Find(v)
		if err != nil {
			return -1, err
		}
		if ok {
			found++
		}
	}

	if removeUnused && stored > found {
		// Rewrite the region from the start, dropping orphans.
		s.nextFree = s.firstRecordAddress()
		for _, v := range values.Items() {
			if err := s.appendValue(v); err != nil {
				return -1, err
			}
		}
		s.metrics.Compactions.Add(1)
	} else {
		for _, v := range values.Items() {
			if v.IsStored() {
				continue
			}
			if err := s.appendValue(v); err != nil {
				return -1, err
			}
		}
	}
	return stored, nil
}

// Find scans the device for a record matching v's identifier and size. On
// a hit the record's bytes are copied into v and its address set. Returns
// false without mutating v when the footer is reached first.
func (s *Store) Find(v *Value) (bool, error) {
	if err := s.checkInitialized(); err != nil {
		return false, err
	}

	addr := s.firstRecordAddress()
	for {
		id, err := s.readID(addr)
		if err != nil {
			return false, err
		}
		if id == footerID {
			return false, nil
		}
		size, err := s.readUint16(addr + IDLen)
		if err != nil {
			return false, err
		}
		if id == v.id && int(size) == v.size {
			v.address = addr
			if err := s.readBytes(v.valueAddress(), v.buf); err != nil {
				v.address = 0
				return false, err
			}
			return true, nil
		}
		addr += recordOverhead + int(size)
	}
}

// Add stores v if no matching record exists yet. A match counts as
// success and leaves v mirroring the stored copy.
func (s *Store) Add(v *Value) error {
	if err := s.checkInitialized(); err != nil {
		return err
	}
	found, err := s.Find(v)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.appendValue(v)
}

// Load decodes every stored record into a fresh value appended to values.
// The caller owns the produced values. Returns the number loaded.
func (s *Store) Load(values *ValueList) (int, error) {
	if err := s.checkInitialized(); err != nil {
		return -1, err
	}

	count := 0
	addr := s.firstRecordAddress()
	for {
		v, next, err := s.decodeNext(addr)
		if err != nil {
			return -1, err
		}
		if v == nil {
			return count, nil
		}
		values.Append(v)
		count++
		addr = next
	}
}

// Count re-scans the region and returns the stored record count without
// allocating.
func (s *Store) Count() (int, error) {
	if err := s.checkInitialized(); err != nil {
		return -1, err
	}
	count, _, err := s.scan()
	if err != nil {
		return -1, err
	}
	return count, nil
}

// Clear discards all records by rewriting the header and footer.
func (s *Store) Clear() error {
	if err := s.storeID(s.beginIndex, headerID); err != nil {
		s.sugar.Errorw("clear failed", "err", err)
		return err
	}
	if err := s.storeID(s.firstRecordAddress(), footerID); err != nil {
		s.sugar.Errorw("clear failed", "err", err)
		return err
	}
	s.nextFree = s.firstRecordAddress()
	return nil
}

// scan walks the records from the first record address to the footer.
// Returns the record count and the footer address.
func (s *Store) scan() (int, int, error) {
	count := 0
	addr := s.firstRecordAddress()
	for {
		id, err := s.readID(addr)
		if err != nil {
			return -1, 0, fmt.Errorf("scan at %d: %w", addr, err)
		}
		if id == footerID {
			return count, addr, nil
		}
		size, err := s.readUint16(addr + IDLen)
		if err != nil {
			return -1, 0, fmt.Errorf("scan at %d: %w", addr, err)
		}
		addr += recordOverhead + int(size)
		count++
	}
}

// decodeNext decodes one record starting at addr. Returns (nil, addr, nil)
// at the footer.
func (s *Store) decodeNext(addr int) (*Value, int, error) {
	id, err := s.readID(addr)
	if err != nil {
		return nil, 0, err
	}
	if id == footerID {
		return nil, addr, nil
	}
	size, err := s.readUint16(addr + IDLen)
	if err != nil {
		return nil, 0, err
	}
	buf := make([]byte, size)
	if err := s.readBytes(addr+recordOverhead, buf); err != nil {
		return nil, 0, err
	}
	v := newStoredValue(s, id, addr, int(size), buf)
	return v, v.nextRecordAddress(), nil
}

// appendValue stores v as a brand-new record at the end of the log and
// relocates the footer past it. On failure v is rolled back to not-stored;
// partially written device bytes are not.
func (s *Store) appendValue(v *Value) error {
	v.address = s.nextFree
	err := v.storeRecord()
	if err == nil {
		err = s.storeID(v.nextRecordAddress(), footerID)
	}
	if err != nil {
		v.address = 0
		s.sugar.Errorw("append failed", "id", v.id.String(), "size", v.size, "err", err)
		return fmt.Errorf("failed to append value %q: %w", v.id.String(), err)
	}
	s.nextFree = v.nextRecordAddress()
	s.metrics.Appends.Add(1)
	return nil
}
