package device

import (
	"fmt"
	"os"
)

// FileDevice is a Device whose contents live in a host file, serving as a
// persistent image of an EEPROM part. The file is created zero-filled at the
// given size on first open and its size is fixed afterwards.
type FileDevice struct {
	file *os.File
	size int
}

// OpenFileDevice opens (or creates) a device image at path with the given
// size in bytes. An existing image keeps its contents; a smaller existing
// file is extended with zero bytes.
func OpenFileDevice(path string, size int) (*FileDevice, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid device size %d", size)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open device image: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat device image: %w", err)
	}
	if info.Size() < int64(size) {
		if err := file.Truncate(int64(size)); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to size device image: %w", err)
		}
	}
	return &FileDevice{file: file, size: size}, nil
}

func (d *FileDevice) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= d.size {
		return 0, fmt.Errorf("read at %d outside device range [0, %d)", addr, d.size)
	}
	var b [1]byte
	if _, err := d.file.ReadAt(b[:], int64(addr)); err != nil {
		return 0, fmt.Errorf("failed to read device image at %d: %w", addr, err)
	}
	return b[0], nil
}

func (d *FileDevice) WriteByte(addr int, b byte) error {
	if addr < 0 || addr >= d.size {
		return fmt.Errorf("write at %d outside device range [0, %d)", addr, d.size)
	}
	if _, err := d.file.WriteAt([]byte{b}, int64(addr)); err != nil {
		return fmt.Errorf("failed to write device image at %d: %w", addr, err)
	}
	return nil
}

func (d *FileDevice) Begin() int { return 0 }

func (d *FileDevice) End() int { return d.size }

// Sync commits the image to stable storage.
func (d *FileDevice) Sync() error { return d.file.Sync() }

// Close closes the underlying image file.
func (d *FileDevice) Close() error { return d.file.Close() }
