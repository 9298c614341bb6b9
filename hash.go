package garden

// FNV-1a 32-bit constants.
const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// HashBytes returns the FNV-1a 32-bit hash of b. The hash is order-sensitive,
// platform-independent, and total: the empty input hashes to the FNV offset
// basis. All arithmetic wraps at 32 bits.
func HashBytes(b []byte) uint32 {
	h := fnvOffset32
	for _, c := range b {
		h ^= uint32(c)
		h *= fnvPrime32
	}
	return h
}

// HashString returns the FNV-1a 32-bit hash of s without allocating.
func HashString(s string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return h
}

// mix32 avalanches a 32-bit value so that nearby seeds produce decorrelated
// streams. Murmur finalizer-style mixing.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
