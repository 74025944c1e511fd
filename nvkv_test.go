package nvkv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvkv/nvkv"
)

func TestStore_EndToEndOnFileDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.img")

	open := func() (*nvkv.FileDevice, *nvkv.Store) {
		dev, err := nvkv.OpenFileDevice(path, 256)
		require.NoError(t, err)
		ps, err := nvkv.Open(dev, nil, nil)
		require.NoError(t, err)
		return dev, ps
	}

	// First boot: declare the schema, everything gets appended.
	dev, ps := open()
	boots := nvkv.NewScalar[uint32](ps, "bts", 0)
	name := nvkv.NewString(ps, "nam", 10, "unnamed")
	values := nvkv.NewValueList()
	values.Append(boots.Record())
	values.Append(name.Record())

	stored, err := ps.BeginWith(values, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stored)

	require.NoError(t, boots.Set(boots.Get()+1))
	require.NoError(t, name.Set("crash test dummy device"))
	require.NoError(t, dev.Sync())
	require.NoError(t, dev.Close())

	// Second boot: the same declarations pick up the persisted state.
	dev, ps = open()
	defer func() { require.NoError(t, dev.Close()) }()
	boots = nvkv.NewScalar[uint32](ps, "bts", 0)
	name = nvkv.NewString(ps, "nam", 10, "unnamed")
	values = nvkv.NewValueList()
	values.Append(boots.Record())
	values.Append(name.Record())

	stored, err = ps.BeginWith(values, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	assert.Equal(t, uint32(1), boots.Get())
	assert.Equal(t, "crash test", name.Get())

	require.NoError(t, boots.Set(boots.Get()+1))
	assert.Equal(t, uint32(2), boots.Get())
}
