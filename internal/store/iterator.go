package store

// Iterator walks the stored records one at a time. Exactly one decoded
// record is live at any moment; each Next drops the previous one, so
// memory use stays bounded by a single record regardless of how many are
// stored.
type Iterator struct {
	s    *Store
	cur  *Value
	done bool
	err  error
}

// Iterator returns a cursor over the stored records, positioned before
// the first one.
func (s *Store) Iterator() *Iterator {
	return &Iterator{s: s}
}

// Next decodes the next record and reports whether one is available.
// Iteration ends at the footer or on a decode failure; see Err.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if err := it.s.checkInitialized(); err != nil {
		it.err = err
		it.done = true
		return false
	}

	addr := it.s.firstRecordAddress()
	if it.cur != nil {
		addr = it.cur.nextRecordAddress()
	}
	v, _, err := it.s.decodeNext(addr)
	it.cur = v
	if err != nil {
		it.err = err
	}
	if v == nil {
		it.done = true
		return false
	}
	return true
}

// Value returns the record decoded by the last successful Next. It is
// only valid until the next call to Next or Reset.
func (it *Iterator) Value() *Value { return it.cur }

// Err returns the decode failure that ended the iteration, or nil after a
// clean walk to the footer.
func (it *Iterator) Err() error { return it.err }

// Reset drops the held record and rewinds the cursor so the records can
// be walked again.
func (it *Iterator) Reset() {
	it.cur = nil
	it.done = false
	it.err = nil
}
