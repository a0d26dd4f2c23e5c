package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultAllocatorMallocReturnsRequestedSize(t *testing.T) {
	require.Len(t, Current().Malloc(128), 128)
}

func TestDefaultAllocatorCallocZeroesAndSizesByProduct(t *testing.T) {
	buf := Current().Calloc(4, 8)
	require.Len(t, buf, 32)
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
}

type countingAllocator struct {
	mallocs int
}

func (c *countingAllocator) Malloc(size int) []byte {
	c.mallocs++
	return make([]byte, size)
}
func (c *countingAllocator) Calloc(count, size int) []byte { return make([]byte, count*size) }
func (c *countingAllocator) Free([]byte)                    {}

func TestSetAllocatorOverridesCurrent(t *testing.T) {
	defer SetAllocator(nil)
	counter := &countingAllocator{}
	SetAllocator(counter)
	Current().Malloc(16)
	require.Equal(t, 1, counter.mallocs)
}

func TestSetAllocatorNilRestoresDefault(t *testing.T) {
	SetAllocator(nil)
	require.Len(t, Current().Malloc(4), 4)
}
