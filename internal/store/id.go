package store

// IDLen is the fixed width of a record identifier on the device.
const IDLen = 3

// ID is a fixed-width record identifier. Shorter inputs are zero-padded,
// longer inputs truncated; equality covers all three bytes including
// padding.
type ID [IDLen]byte

// headerID marks the start of the record region, footerID its current
// logical end. Both are reserved and never valid record identifiers.
var (
	headerID = NewID("#>!")
	footerID = NewID("#<!")
)

// NewID builds an ID from up to IDLen characters of s. Anything past the
// third character is dropped.
func NewID(s string) ID {
	var id ID
	copy(id[:], s)
	return id
}

// String returns the identifier without trailing padding, for display and
// logging only. Identity is always the full 3-byte comparison.
func (id ID) String() string {
	n := len(id)
	for n > 0 && id[n-1] == 0 {
		n--
	}
	return string(id[:n])
}

// readID reads a raw identifier at addr.
func (s *Store) readID(addr int) (ID, error) {
	var id ID
	if err := s.readBytes(addr, id[:]); err != nil {
		return ID{}, err
	}
	return id, nil
}

// storeID writes a raw identifier at addr.
func (s *Store) storeID(addr int, id ID) error {
	return s.updateBytes(addr, id[:])
}
