package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvkv/nvkv/internal/device/mockdev"
	"github.com/nvkv/nvkv/internal/store"
)

func setupIteratorStore(t *testing.T) (*store.Store, *mockdev.MockDevice) {
	t.Helper()
	dev := mockdev.New(128)
	s := newTestStore(t, dev)
	a := store.NewValue(s, "aaa", 2, []byte{1, 2})
	b := store.NewValue(s, "bbb", 1, []byte{3})
	c := store.NewValue(s, "ccc", 3, []byte{4, 5, 6})
	values := store.NewValueList()
	values.Append(a)
	values.Append(b)
	values.Append(c)
	_, err := s.BeginWith(values, false)
	require.NoError(t, err)
	return s, dev
}

func TestIterator_WalksAllRecords(t *testing.T) {
	s, _ := setupIteratorStore(t)

	it := s.Iterator()
	var ids []string
	for it.Next() {
		ids = append(ids, it.Value().ID().String())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, ids)
	assert.Nil(t, it.Value(), "cursor holds nothing after the footer")
	assert.False(t, it.Next(), "iterator stays exhausted")
}

func TestIterator_OneLiveRecord(t *testing.T) {
	s, _ := setupIteratorStore(t)

	it := s.Iterator()
	require.True(t, it.Next())
	first := it.Value()
	require.True(t, it.Next())
	second := it.Value()
	assert.NotSame(t, first, second, "each step replaces the held record")
	assert.Equal(t, "bbb", second.ID().String())
}

func TestIterator_Reset(t *testing.T) {
	s, _ := setupIteratorStore(t)

	it := s.Iterator()
	require.True(t, it.Next())
	require.True(t, it.Next())

	it.Reset()
	require.True(t, it.Next())
	assert.Equal(t, "aaa", it.Value().ID().String())
}

func TestIterator_DecodeFaultEndsIteration(t *testing.T) {
	s, dev := setupIteratorStore(t)

	it := s.Iterator()
	require.True(t, it.Next())
	// Fail reads from the second record's payload onward.
	first := it.Value()
	secondStart := first.Address() + 5 + first.Size()
	dev.FailAfter = secondStart + 5

	assert.False(t, it.Next())
	assert.Error(t, it.Err())

	dev.FailAfter = -1
	it.Reset()
	require.True(t, it.Next(), "reset allows a clean re-walk")
	require.NoError(t, it.Err())
}
