package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvkv/nvkv/internal/device/mockdev"
	"github.com/nvkv/nvkv/internal/store"
)

func TestNewID_PadAndTruncate(t *testing.T) {
	assert.Equal(t, store.ID{'a', 'b', 'c'}, store.NewID("abc"))
	assert.Equal(t, store.ID{'a', 0, 0}, store.NewID("a"))
	assert.Equal(t, store.ID{}, store.NewID(""))
	assert.Equal(t, store.ID{'a', 'b', 'c'}, store.NewID("abcdef"), "over-long input keeps the first three bytes")
}

func TestID_EqualityIncludesPadding(t *testing.T) {
	assert.Equal(t, store.NewID("ab"), store.NewID("ab"))
	assert.NotEqual(t, store.NewID("ab"), store.NewID("ab "))
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "ab", store.NewID("ab").String())
	assert.Equal(t, "abc", store.NewID("abc").String())
	assert.Equal(t, "", store.ID{}.String())
}

func TestValueList_FindByMatch(t *testing.T) {
	dev := mockdev.New(64)
	s := newTestStore(t, dev)

	a := store.NewValue(s, "aaa", 2, nil)
	b := store.NewValue(s, "bbb", 2, nil)
	l := store.NewValueList()
	l.Append(a)
	l.Append(b)
	require.Equal(t, 2, l.Len())

	probe := store.NewValue(s, "bbb", 2, nil)
	assert.Same(t, b, l.Find(probe))

	// Same id, different size: no match.
	wide := store.NewValue(s, "bbb", 4, nil)
	assert.Nil(t, l.Find(wide))
}

func TestValue_Match(t *testing.T) {
	dev := mockdev.New(64)
	s := newTestStore(t, dev)

	a := store.NewValue(s, "key", 4, nil)
	assert.True(t, a.Match(store.NewValue(s, "key", 4, nil)))
	assert.False(t, a.Match(store.NewValue(s, "key", 2, nil)))
	assert.False(t, a.Match(store.NewValue(s, "ke2", 4, nil)))
	// Truncation makes over-long ids collide.
	assert.True(t, a.Match(store.NewValue(s, "keyboard", 4, nil)))
}
