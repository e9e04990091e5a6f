package bloomfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMurmur3KnownVector(t *testing.T) {
	// murmurhash3_x86_32("", 0) == 0, a standard reference vector for the
	// algorithm.
	assert.Equal(t, uint32(0), murmur3(0, nil))
}

func TestFilterMatchesAddedElement(t *testing.T) {
	f := New(10, 0.0001, 0, UpdateAll)

	data := []byte("watched script")
	assert.False(t, f.Matches(data))

	f.Add(data)
	assert.True(t, f.Matches(data))
}

func TestFilterIsDeterministic(t *testing.T) {
	a := New(5, 0.001, 42, UpdateAll)
	b := New(5, 0.001, 42, UpdateAll)

	a.Add([]byte("x"))
	b.Add([]byte("x"))

	require.Equal(t, a.MsgFilterLoad().Filter, b.MsgFilterLoad().Filter)
}

func TestFilterSizeRespectsMax(t *testing.T) {
	f := New(1_000_000, 0.00001, 0, UpdateNone)
	assert.LessOrEqual(t, len(f.MsgFilterLoad().Filter), MaxFilterSize)
	assert.LessOrEqual(t, f.MsgFilterLoad().HashFuncs, uint32(MaxFilterFuncs))
}
