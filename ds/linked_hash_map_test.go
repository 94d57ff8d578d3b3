package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedHashMap_Keys(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()

	assert.True(t, len(lhm.Keys()) == 0)

	lhm.Put("a", 1)
	lhm.Put("b", 2)
	lhm.Put("a", 1)

	assert.Equal(t, []string{"a", "b"}, lhm.Keys())
}

func TestLinkedHashMap_Put(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("abc", 1)
	lhm.Put("abc", 2)

	assert.Equal(t, lhm.hashMap, map[string]any{"abc": 2})
	assert.Equal(t, 1, lhm.Len())
}

func TestLinkedHashMap_Delete(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()
	lhm.Put("a", 1)
	lhm.Put("b", 2)
	lhm.Put("c", 3)

	value, ok := lhm.Delete("b")
	assert.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Equal(t, []string{"a", "c"}, lhm.Keys())

	_, ok = lhm.Delete("b")
	assert.False(t, ok)

	lhm.Put("b", 4)
	assert.Equal(t, []string{"a", "c", "b"}, lhm.Keys())
}

func TestLinkedHashMap_ToJSON(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("abc", 1)
	lhm.Put("def", 2)

	bs, err := lhm.ToJSON()
	assert.NoError(t, err)

	assert.Equal(t, []byte(`{"abc":1,"def":2}`), bs)
}
