package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a tensor name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of an artifact payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
