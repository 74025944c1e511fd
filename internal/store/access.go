package store

import (
	"encoding/binary"
	"fmt"
)

// Bounds-checked device access. Every read and write of the store goes
// through these primitives; updateByte is where the wear policy lives:
// the current byte is compared first and the physical write skipped when
// it already matches.

// checkRange verifies that [addr, addr+size) lies inside the store window.
func (s *Store) checkRange(addr, size int) error {
	if addr >= s.beginIndex && addr+size <= s.endIndex {
		return nil
	}
	s.sugar.Errorw("address out of range",
		"begin", s.beginIndex, "addr", addr, "size", size, "end", s.endIndex)
	return fmt.Errorf("%w: %d <= %d + %d <= %d", ErrOutOfRange, s.beginIndex, addr, size, s.endIndex)
}

// readByte reads one byte at addr.
func (s *Store) readByte(addr int) (byte, error) {
	if err := s.checkRange(addr, 1); err != nil {
		return 0, err
	}
	b, err := s.dev.ReadByte(addr)
	if err != nil {
		return 0, fmt.Errorf("device read at %d: %w", addr, err)
	}
	s.metrics.ByteReads.Add(1)
	return b, nil
}

// readBytes fills dst with the bytes starting at addr.
func (s *Store) readBytes(addr int, dst []byte) error {
	if err := s.checkRange(addr, len(dst)); err != nil {
		return err
	}
	for i := range dst {
		b, err := s.dev.ReadByte(addr + i)
		if err != nil {
			return fmt.Errorf("device read at %d: %w", addr+i, err)
		}
		dst[i] = b
	}
	s.metrics.ByteReads.Add(int64(len(dst)))
	return nil
}

// updateByte writes b at addr unless the device already holds it.
func (s *Store) updateByte(addr int, b byte) error {
	if err := s.checkRange(addr, 1); err != nil {
		return err
	}
	return s.updateByteUnchecked(addr, b)
}

func (s *Store) updateByteUnchecked(addr int, b byte) error {
	cur, err := s.dev.ReadByte(addr)
	if err != nil {
		return fmt.Errorf("device read at %d: %w", addr, err)
	}
	s.metrics.ByteReads.Add(1)
	if cur == b {
		s.metrics.SkippedWrites.Add(1)
		return nil
	}
	if err := s.dev.WriteByte(addr, b); err != nil {
		return fmt.Errorf("device write at %d: %w", addr, err)
	}
	s.metrics.ByteWrites.Add(1)
	return nil
}

// updateBytes writes src starting at addr, per byte, skipping unchanged
// bytes.
func (s *Store) updateBytes(addr int, src []byte) error {
	if err := s.checkRange(addr, len(src)); err != nil {
		return err
	}
	for i, b := range src {
		if err := s.updateByteUnchecked(addr+i, b); err != nil {
			return err
		}
	}
	return nil
}

// readUint16 reads the little-endian size field at addr.
func (s *Store) readUint16(addr int) (uint16, error) {
	var b [sizeLen]byte
	if err := s.readBytes(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// updateUint16 writes the little-endian size field at addr.
func (s *Store) updateUint16(addr int, u uint16) error {
	var b [sizeLen]byte
	binary.LittleEndian.PutUint16(b[:], u)
	return s.updateBytes(addr, b[:])
}
