package bloomfilter

// murmur3 computes the 32-bit MurmurHash3 (x86_32 variant) of data with the
// given seed. BIP37 pins this exact algorithm for bloom filter indexing;
// no third-party implementation is carried in the corpus this module is
// built from, so it is implemented directly against the public
// MurmurHash3 algorithm specification.
func murmur3(seed uint32, data []byte) uint32 {
	const (
		c1 = 0xcc9e2d51
		c2 = 0x1b873593
	)

	h := seed

	nblocks := len(data) / 4
	for i := 0; i < nblocks; i++ {
		k := uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24

		k *= c1
		k = rotl32(k, 15)
		k *= c2

		h ^= k
		h = rotl32(h, 13)
		h = h*5 + 0xe6546b64
	}

	tail := data[nblocks*4:]

	var k1 uint32

	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16

		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8

		fallthrough
	case 1:
		k1 ^= uint32(tail[0])

		k1 *= c1
		k1 = rotl32(k1, 15)
		k1 *= c2
		h ^= k1
	}

	h ^= uint32(len(data)) //nolint:gosec // len(data) is always small (script/outpoint sized)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h
}

func rotl32(x uint32, r uint) uint32 {
	return x<<r | x>>(32-r)
}
