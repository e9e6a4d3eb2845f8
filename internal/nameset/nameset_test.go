package nameset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocator_NextVar_Sequence(t *testing.T) {
	a := NewAllocator(nil)
	got := make([]string, 0, 28)
	for i := 0; i < 28; i++ {
		got = append(got, a.NextVar())
	}

	assert.Equal(t, "_a", got[0])
	assert.Equal(t, "_z", got[25])
	assert.Equal(t, "_aa", got[26])
	assert.Equal(t, "_ab", got[27])
}

func TestAllocator_NextVar_SkipsReserved(t *testing.T) {
	a := NewAllocator(map[string]struct{}{"_a": {}, "_b": {}})
	assert.Equal(t, "_c", a.NextVar())
}

func TestAllocator_NextParam_Sequence(t *testing.T) {
	a := NewAllocator(nil)
	assert.Equal(t, "a", a.NextParam())
	assert.Equal(t, "b", a.NextParam())
}

func TestAllocator_VarAndParamSequencesAreIndependent(t *testing.T) {
	a := NewAllocator(nil)
	assert.Equal(t, "_a", a.NextVar())
	assert.Equal(t, "a", a.NextParam())
	assert.Equal(t, "_b", a.NextVar())
}
