package addressbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndContains(t *testing.T) {
	b := New()
	script := []byte{0x76, 0xa9, 0x14}

	assert.False(t, b.Contains(script))

	b.Add(script)
	assert.True(t, b.Contains(script))
	assert.Equal(t, 1, b.Len())
}

func TestAddIsIdempotent(t *testing.T) {
	b := New()
	script := []byte{0x01, 0x02}

	b.Add(script)
	b.Add(script)

	assert.Equal(t, 1, b.Len())
}

func TestWatchedScriptsSnapshotIsIndependent(t *testing.T) {
	b := New()
	b.Add([]byte{0xaa})

	scripts := b.WatchedScripts()
	scripts[0][0] = 0xff

	assert.True(t, b.Contains([]byte{0xaa}))
}
