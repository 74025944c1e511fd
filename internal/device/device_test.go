package device_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvkv/nvkv/internal/device"
)

func TestMemDevice_ReadWrite(t *testing.T) {
	dev := device.NewMemDevice(16)
	assert.Equal(t, 0, dev.Begin())
	assert.Equal(t, 16, dev.End())

	require.NoError(t, dev.WriteByte(3, 0xAB))
	b, err := dev.ReadByte(3)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	b, err = dev.ReadByte(4)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b, "unwritten bytes read as zero")
}

func TestMemDevice_OutOfRange(t *testing.T) {
	dev := device.NewMemDevice(16)

	_, err := dev.ReadByte(16)
	assert.Error(t, err)
	_, err = dev.ReadByte(-1)
	assert.Error(t, err)
	assert.Error(t, dev.WriteByte(16, 0))
}

func TestFileDevice_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.img")

	dev, err := device.OpenFileDevice(path, 32)
	require.NoError(t, err)
	require.NoError(t, dev.WriteByte(7, 0xCD))
	require.NoError(t, dev.Sync())
	require.NoError(t, dev.Close())

	dev2, err := device.OpenFileDevice(path, 32)
	require.NoError(t, err)
	defer func() { require.NoError(t, dev2.Close()) }()

	b, err := dev2.ReadByte(7)
	require.NoError(t, err)
	assert.Equal(t, byte(0xCD), b)

	b, err = dev2.ReadByte(8)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestFileDevice_ExtendsShortImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.img")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))

	dev, err := device.OpenFileDevice(path, 16)
	require.NoError(t, err)
	defer func() { require.NoError(t, dev.Close()) }()

	assert.Equal(t, 16, dev.End())
	b, err := dev.ReadByte(2)
	require.NoError(t, err)
	assert.Equal(t, byte(3), b)
	b, err = dev.ReadByte(15)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestFileDevice_InvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.img")
	_, err := device.OpenFileDevice(path, 0)
	assert.Error(t, err)
}

func TestFileDevice_OutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img")
	dev, err := device.OpenFileDevice(path, 8)
	require.NoError(t, err)
	defer func() { require.NoError(t, dev.Close()) }()

	_, err = dev.ReadByte(8)
	assert.Error(t, err)
	assert.Error(t, dev.WriteByte(-1, 0))
}
